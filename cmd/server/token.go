package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanagustin/backend/internal/auth"
	"github.com/sanagustin/backend/internal/config"
	"github.com/sanagustin/backend/internal/storage/sqlite"
)

// tokenCmd issues a bearer token for a registered resident. Sign-in proper
// happens at the identity provider; this is for operators and local testing.
func tokenCmd(cfg *config.Config) *cobra.Command {
	var id auth.Identity

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a session token for a resident",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer store.Close()

			var authenticator auth.Authenticator = auth.NewProviderAuthenticator(store)
			resident, err := authenticator.Authenticate(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("cannot issue token for %q: %w", id.Email, err)
			}

			token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL).Generate(resident)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&id.Email, "email", "", "resident email")
	cmd.Flags().StringVar(&id.Provider, "provider", "", "identity provider (e.g. google)")
	cmd.Flags().StringVar(&id.ProviderID, "provider-id", "", "subject at the identity provider")
	return cmd
}
