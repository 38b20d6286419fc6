// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/gestock/gestock/internal/config"
	"github.com/gestock/gestock/internal/logger"
)

var (
	cfg        config.Config
	configPath string // Path to the configuration directory

	rootCmd = &cobra.Command{
		Use:   "gestock",
		Short: "GeStock is a web-based stock management application",
		Long: `GeStock is a web-based stock management application.
It serves the web interface and offers commands to inspect the configuration,
check the database and toggle maintenance mode and features.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Path to the configuration directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration, installs the timezone and initialises
// the global logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if err = cfg.Apply(); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}
