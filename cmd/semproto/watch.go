package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/semproto/watch"
)

func watchCmd(g *globalFlags) *cobra.Command {
	var (
		f        compileFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile whenever the vocabulary sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), g.logLevel)

			cfg, err := resolveConfig(cmd, g, &f, logger)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				cfg.Watch.Debounce = debounce
			}

			r, err := newRunner(cfg, logger)
			if err != nil {
				return err
			}

			// A failed first compile is reported; watching continues so the
			// source can be fixed.
			if _, err := r.compile(); err != nil {
				logger.Error("Initial compile failed", "error", err)
			}

			w, err := watch.New(watch.Config{
				Source:   cfg.Source,
				Debounce: cfg.Watch.Debounce,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			// Setup signal handling
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = w.Run(ctx, func(ctx context.Context, paths []string) {
				logger.Info("Sources changed, recompiling", "files", len(paths))
				if _, err := r.compile(); err != nil {
					logger.Error("Recompile failed", "error", err)
				}
			})
			logger.Info("Watch stopped")
			return err
		},
	}

	f.bind(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Wait for changes to settle this long before recompiling")
	return cmd
}
