package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/semproto/config"
)

func initCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.ProjectConfigFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), g.logLevel)

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}

			path, err := config.NewLoader(logger).EnsureProjectConfig(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
