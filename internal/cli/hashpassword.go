package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthway/realty/internal/auth"
)

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the stored hash for a password",
		Long:  "Hashes a password with PBKDF2-SHA256 and prints the stored form, for seeding accounts with SQL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
