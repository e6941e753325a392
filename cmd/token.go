package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidlike/internal/auth"
	"github.com/Taichi-iskw/vidlike/internal/config"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens",
}

// tokenIssueCmd prints a signed token for a user
var tokenIssueCmd = &cobra.Command{
	Use:   "issue USERNAME",
	Short: "Issue a bearer token for USERNAME",
	Long:  `Sign a JWT with the configured secret. Send it as "Authorization: Bearer <token>" to like or unlike videos.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := auth.NewToken(cfg.JWTSecret, args[0], ttl)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenIssueCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")

	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)
}
