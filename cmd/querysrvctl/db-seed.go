package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/db"
)

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the YAML seed data",
	Long: `Load the YAML seed data of the configured bucket.

The lami bucket reads <dir>/lami/<Class>-<line_num>.yml for the service,
plc and fdc tables. Other buckets read <dir>/<bucket>/<Class>.yml for
Line, Equipment and Motor. Rows that already exist are skipped.

Example:
  querysrvctl db seed
  querysrvctl db seed --dir /app/yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		cfg, err := loadSettings()
		if err == nil {
			err = seedDatabases(cmd.OutOrStdout(), cfg, dir, nil)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Seeding failed:", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbSeedCmd)
	dbSeedCmd.Flags().String("dir", "./yaml", "directory holding one seed directory per bucket")
}

func seedOptions(cfg *config.Settings, dir string, databases []string) db.SeedOptions {
	return db.SeedOptions{
		Dir:       dir,
		Bucket:    cfg.BucketName,
		Line:      cfg.LineNum,
		Databases: databases,
	}
}

func seedDatabases(out io.Writer, cfg *config.Settings, dir string, databases []string) error {
	conns, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conns.Close() }()

	results, err := db.Seed(conns, seedOptions(cfg, dir, databases))
	for _, r := range results {
		fmt.Fprintf(out, "%s: %d row(s) from %s\n", r.Class, r.Inserted, r.File)
	}
	return err
}
