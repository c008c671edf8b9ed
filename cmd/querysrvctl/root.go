package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "querysrvctl",
	Short: "Run and manage the LGES query server",
	Long: `querysrvctl runs the LGES query server and manages its five
PostgreSQL databases: creation, migrations and seed data.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Current()
}

// loadSettings reads and validates the configuration and installs it as
// the global settings.
func loadSettings() (*config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	config.Set(cfg)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
