package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanagustin/backend/internal/config"
	"github.com/sanagustin/backend/pkg/logging"
)

func main() {
	cfg := &config.Config{}
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "sanagustin",
		Short:         "San Agustín community backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				loaded.DBPath = dbPath
			}
			*cfg = *loaded
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")

	// Running without a subcommand serves the API.
	serve := serveCmd(cfg)
	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())
	rootCmd.AddCommand(serve, seedCmd(cfg), tokenCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
