package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gestock/gestock/internal/daemon"
	"github.com/gestock/gestock/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the GeStock web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer logger.Close() //nolint:errcheck

			d, err := daemon.New(cmd.Context(), &cfg)
			if err != nil {
				log.Error().Err(err).Msg("startup failed")

				return err
			}

			return d.Start()
		},
	}
)
