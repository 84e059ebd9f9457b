// Package commands defines the projectflow CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "projectflow",
		Short:         "ProjectFlow project and task tracker",
		Long:          "ProjectFlow is a multi-user project and task tracking API backed by MongoDB.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Running without a subcommand starts the server.
			return runServe(cmd)
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "path to config file")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
