// Package cli defines the cobra command tree for realty.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthway/realty/internal/config"
	"github.com/hearthway/realty/internal/db"
	"github.com/hearthway/realty/internal/logging"
)

var flagDB string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "realty",
		Short:         "Real-estate listing and transaction backend",
		Long:          "Backend tooling for the realty platform: run schema migrations, generate password hashes for seeding accounts, and prune expired sessions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(config.Load().DevMode)
		},
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: $REALTY_DB_PATH or ~/.realty/realty.db)")

	root.AddCommand(
		newMigrateCmd(),
		newHashPasswordCmd(),
		newCleanupSessionsCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag, the configured
// path, or the default path, in that order.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = config.Load().DBPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	slog.Debug("opening database", "path", path)
	return db.Open(path)
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
