package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gestock/gestock/internal/db"
)

func init() { //nolint: gochecknoinits
	dbCmd.AddCommand(dbPingCmd)
	rootCmd.AddCommand(dbCmd)
}

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database commands",
	}

	dbPingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Connect to the database and migrate the schema",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s database %q is reachable\n", cfg.DB.Engine, cfg.DB.Name)

			return err
		},
	}
)

// openDB opens and migrates the configured database for the admin commands.
func openDB(cmd *cobra.Command) (*db.Connection, error) {
	conn, err := db.Open(cmd.Context(), &cfg)
	if err != nil {
		return nil, err
	}

	if err = conn.Migrate(cmd.Context()); err != nil {
		_ = conn.Close()

		return nil, err
	}

	return conn, nil
}
