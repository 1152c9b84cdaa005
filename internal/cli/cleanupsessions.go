package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hearthway/realty/internal/auth"
	"github.com/hearthway/realty/internal/config"
)

func newCleanupSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-sessions",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer closeDB(database)

			sessions := auth.NewSessionStore(database, config.Load().SessionTTL)
			removed, err := sessions.Cleanup()
			if err != nil {
				return fmt.Errorf("cleaning up sessions: %w", err)
			}

			slog.Info("expired sessions removed", "count", removed)
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired sessions\n", removed)
			return nil
		},
	}
}
