package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/db"
)

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create, migrate and seed the databases",
	Long: `Create every configured database that does not exist yet, run the
migrations of all five databases and load the seed data into the
databases that were just created.

The whole procedure is retried, since the database server may still be
starting when the container comes up.

Example:
  querysrvctl db init
  querysrvctl db init --retries 10 --dir /app/yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")
		dir, _ := cmd.Flags().GetString("dir")

		cfg, err := loadSettings()
		if err == nil {
			err = retry(cmd.ErrOrStderr(), retries, 3*time.Second, func() error {
				return initDatabases(cmd.OutOrStdout(), cfg, dir)
			})
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Database initialisation failed:", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Int("retries", 5, "number of attempts")
	dbInitCmd.Flags().String("dir", "./yaml", "directory holding one seed directory per bucket")
}

// retry runs fn until it succeeds or attempts run out, and returns the
// last error.
func retry(log io.Writer, attempts int, wait time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		fmt.Fprintf(log, "attempt %d/%d failed: %v\n", i, attempts, err)
		if i < attempts {
			time.Sleep(wait)
		}
	}
	return err
}

func initDatabases(out io.Writer, cfg *config.Settings, dir string) error {
	urls := cfg.DatabaseURLs()

	var created []string
	for _, name := range db.Names {
		ok, err := db.EnsureDatabase(urls[name])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			fmt.Fprintf(out, "%s: database created\n", name)
			created = append(created, name)
		} else {
			fmt.Fprintf(out, "%s: database already exists\n", name)
		}
	}

	if err := runMigrations(cfg, ""); err != nil {
		return err
	}

	if len(created) == 0 {
		return nil
	}
	return seedDatabases(out, cfg, dir, created)
}
