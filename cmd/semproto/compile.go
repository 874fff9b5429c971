package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360studio/semproto/compiler"
	"github.com/c360studio/semproto/config"
)

// compileFlags override configuration values for a single run.
type compileFlags struct {
	source             string
	outputDir          string
	packageName        string
	namespace          string
	canonicalNamespace string
	commentStyle       string
	metricsFile        string
}

func (f *compileFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.source, "src", "s", "", "Vocabulary file or glob (e.g. 'vocab/**/*.nt')")
	flags.StringVarP(&f.outputDir, "out", "o", "", "Output directory")
	flags.StringVarP(&f.packageName, "package", "p", "", "Proto package name")
	flags.StringVar(&f.namespace, "namespace", "", "Vocabulary IRI namespace (default: detect)")
	flags.StringVar(&f.canonicalNamespace, "canonical-namespace", "", "IRI prefix for enumeration values")
	flags.StringVar(&f.commentStyle, "comment-style", "", "Comment rendering (text, markdown)")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
}

// apply copies the flags the user set onto cfg.
func (f *compileFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("src") {
		cfg.Source = f.source
	}
	if flags.Changed("out") {
		cfg.OutputDir = f.outputDir
	}
	if flags.Changed("package") {
		cfg.Package = f.packageName
	}
	if flags.Changed("namespace") {
		cfg.Vocabulary.Namespace = f.namespace
	}
	if flags.Changed("canonical-namespace") {
		cfg.Vocabulary.CanonicalNamespace = f.canonicalNamespace
	}
	if flags.Changed("comment-style") {
		cfg.Comments.Style = f.commentStyle
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
}

// resolveConfig loads configuration, applies flag overrides and validates.
func resolveConfig(cmd *cobra.Command, g *globalFlags, f *compileFlags, logger *slog.Logger) (*config.Config, error) {
	cfg, err := loadConfig(g.configPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	f.apply(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Source == "" {
		return nil, fmt.Errorf("no source: pass --src or set source in %s", config.ProjectConfigFile)
	}
	return cfg, nil
}

// runner compiles with one configuration, optionally recording metrics.
type runner struct {
	cfg      *config.Config
	compiler *compiler.Compiler
	metrics  *compiler.Metrics
	logger   *slog.Logger
}

func newRunner(cfg *config.Config, logger *slog.Logger) (*runner, error) {
	var metrics *compiler.Metrics
	if cfg.MetricsFile != "" {
		metrics = compiler.NewMetrics()
	}

	c, err := compiler.New(compiler.Options{
		Namespace:          cfg.Vocabulary.Namespace,
		CanonicalNamespace: cfg.Vocabulary.CanonicalNamespace,
		CommentStyle:       compiler.CommentStyle(cfg.Comments.Style),
		Patch:              cfg.Patch(),
		Logger:             logger,
		Metrics:            metrics,
	})
	if err != nil {
		return nil, err
	}

	return &runner{cfg: cfg, compiler: c, metrics: metrics, logger: logger}, nil
}

func (r *runner) compile() (*compiler.Result, error) {
	res, err := r.compiler.Compile(r.cfg.Source, r.cfg.OutputDir, r.cfg.Package)

	if r.metrics != nil {
		if werr := r.metrics.WriteTextfile(r.cfg.MetricsFile); werr != nil {
			r.logger.Warn("Failed to write metrics file", "path", r.cfg.MetricsFile, "error", werr)
		}
	}
	return res, err
}

func compileCmd(g *globalFlags) *cobra.Command {
	var f compileFlags

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a vocabulary into schema.proto and schema_descriptor.json",
		Example: `  semproto compile -s schemaorg-current-https.nt -o gen -p schemaorg
  semproto compile -s 'vocab/**/*.ttl' --comment-style markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), g.logLevel)

			cfg, err := resolveConfig(cmd, g, &f, logger)
			if err != nil {
				return err
			}

			r, err := newRunner(cfg, logger)
			if err != nil {
				return err
			}

			res, err := r.compile()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s (%d classes, %d enumerations, %d properties)\n",
				res.SchemaPath, res.DescriptorPath, res.Classes, res.Enumerations, res.Properties)
			return nil
		},
	}

	f.bind(cmd)
	return cmd
}
