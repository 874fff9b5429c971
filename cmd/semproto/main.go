// Package main provides the semproto binary entry point.
// Semproto compiles a linked-data vocabulary such as schema.org into a
// proto3 schema and a JSON descriptor for serializers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/semproto/config"
	"github.com/c360studio/semproto/store"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semproto"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Linked-data vocabulary to protocol buffer compiler",
		Long: `Semproto compiles a schema.org-style RDF vocabulary into a proto3
schema (schema.proto) and a JSON descriptor (schema_descriptor.json).

It provides:
- Multi-parent inheritance flattened into per-class fields
- Property ranges as oneof unions, widened to every subclass
- Enumerations as an open enum/object wrapper pair

Input may be N-Triples, N-Quads, Turtle, RDF/XML or JSON-LD.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML); default is layered user and project config")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		compileCmd(&g),
		watchCmd(&g),
		initCmd(&g),
		formatsCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range store.ListFormats() {
				f, _ := store.FormatByName(name)
				fmt.Fprintf(out, "%-10s %s\n", f.Name, strings.Join(f.Extensions, " "))
			}
		},
	}
}

// newLogger configures the default slog logger on w.
func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads the named file, or the layered user and project config
// when no file is named.
func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	loader := config.NewLoader(logger)
	if configPath != "" {
		return loader.LoadExplicit(configPath)
	}
	return loader.Load()
}
