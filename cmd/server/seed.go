package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sanagustin/backend/internal/config"
	"github.com/sanagustin/backend/internal/seed"
	"github.com/sanagustin/backend/internal/storage/sqlite"
)

func seedCmd(cfg *config.Config) *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo community into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer store.Close()

			sum, err := seed.Load(cmd.Context(), store, opts)
			if errors.Is(err, seed.ErrAlreadySeeded) {
				slog.Warn("Nothing to do", "database", cfg.DBPath, "reason", err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Seeded %s: %d areas, %d visitor spots, %d units, %d parking slots, %d debts, %d residents\n",
				cfg.DBPath, sum.Areas, sum.VisitorSpots, sum.Units, sum.ParkingSlots, sum.Debts, sum.Residents)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "", "create an administrator with this email")
	cmd.Flags().StringVar(&opts.AdminUnit, "admin-unit", "", "link the administrator to this unit number")
	return cmd
}
