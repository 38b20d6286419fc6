package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/gestock/gestock/internal/db"
	"github.com/gestock/gestock/internal/feature"
)

func init() { //nolint: gochecknoinits
	featureCmd.AddCommand(featureListCmd, featureSetCmd)
	rootCmd.AddCommand(featureCmd)
}

var (
	featureCmd = &cobra.Command{
		Use:   "feature",
		Short: "Show and override feature toggles",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	featureListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the features and whether they are enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			features := feature.New(conn.Gorm(), cfg.App.Features)

			all, err := features.All()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
			for _, name := range features.Names() {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", name, onOff(all[name]))
			}

			return w.Flush()
		},
	}

	featureSetCmd = &cobra.Command{
		Use:   "set <name> <on|off>",
		Short: "Override a feature at runtime",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[1])
			if err != nil {
				return err
			}

			conn, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			if err = feature.New(conn.Gorm(), cfg.App.Features).Set(args[0], on); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], onOff(on))

			return err
		},
	}
)

func onOff(on bool) string {
	if on {
		return "on"
	}

	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	on, err := cast.ToBoolE(s)
	if err != nil {
		return false, errors.Errorf("expected on or off, got %q", s)
	}

	return on, nil
}

func gormOf(conn *db.Connection) *gorm.DB {
	if conn == nil {
		return nil
	}

	return conn.Gorm()
}
