package app

import (
	"fmt"

	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/spf13/cobra"

	"github.com/gestock/gestock/internal/config"
)

const keyLength = 32

func init() { //nolint: gochecknoinits
	keyCmd.AddCommand(keyGenerateCmd)
	rootCmd.AddCommand(keyCmd)
}

var (
	keyCmd = &cobra.Command{
		Use:   "key",
		Short: "Manage the application key",
	}

	keyGenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Print a new APP_KEY value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.KeyPrefix+encryptcookie.GenerateKey(keyLength))

			return err
		},
	}
)
