package commands

import (
	"github.com/spf13/cobra"

	"github.com/projectflow/projectflow/internal/app"
	"github.com/projectflow/projectflow/internal/config"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	a, cleanup, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.Run()
}
