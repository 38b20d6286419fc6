package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gestock/gestock/internal/db"
	"github.com/gestock/gestock/internal/maintenance"
)

func init() { //nolint: gochecknoinits
	downCmd.Flags().StringVar(&downMessage, "message", "", "Message shown on the maintenance page")
	downCmd.Flags().IntVar(&downRetry, "retry", 0, "Retry-After value in seconds")

	rootCmd.AddCommand(downCmd, upCmd)
}

var (
	downMessage string
	downRetry   int

	downCmd = &cobra.Command{
		Use:   "down",
		Short: "Put the application into maintenance mode",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMaintenance(cmd, func(d maintenance.Driver) error {
				if err := d.Down(maintenance.NewState(downMessage, downRetry)); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Application is now in maintenance mode.")

				return err
			})
		},
	}

	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Bring the application out of maintenance mode",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMaintenance(cmd, func(d maintenance.Driver) error {
				if err := d.Up(); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Application is now live.")

				return err
			})
		},
	}
)

// withMaintenance runs fn with the configured driver. The database is only
// opened for the database driver.
func withMaintenance(cmd *cobra.Command, fn func(maintenance.Driver) error) error {
	var conn *db.Connection

	if cfg.App.Maintenance.Driver == maintenance.DriverDatabase {
		var err error
		if conn, err = openDB(cmd); err != nil {
			return err
		}
		defer conn.Close() //nolint:errcheck
	}

	driver, err := maintenance.New(&cfg, gormOf(conn))
	if err != nil {
		return err
	}

	return fn(driver)
}
