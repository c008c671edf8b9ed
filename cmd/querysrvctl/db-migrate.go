package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/db"
)

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schemas",
	Long: `Create and/or upgrade the database schemas.

This command runs all pending migrations of every database, or of the one
named by --database.

Example:
  querysrvctl db migrate
  querysrvctl db migrate --database plc`,
	Run: func(cmd *cobra.Command, args []string) {
		only, _ := cmd.Flags().GetString("database")
		cfg, err := loadSettings()
		if err == nil {
			err = runMigrations(cfg, only)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Migration failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1) of
every database, or of the one named by --database.

Example:
  querysrvctl db down                 # Rollback 1 migration everywhere
  querysrvctl db down 3 --database fdc`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "invalid number of steps %q\n", args[0])
				os.Exit(1)
			}
			steps = n
		}

		only, _ := cmd.Flags().GetString("database")
		cfg, err := loadSettings()
		if err == nil {
			err = runMigrationsDown(cfg, only, steps)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Rollback failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the migration version of every database",
	Run: func(cmd *cobra.Command, args []string) {
		only, _ := cmd.Flags().GetString("database")
		cfg, err := loadSettings()
		if err == nil {
			err = showMigrationStatus(cfg, only)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to get status:", err)
			os.Exit(1)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{dbMigrateCmd, dbMigrateDownCmd, dbMigrateStatusCmd} {
		c.Flags().String("database", "", "only this database (service, feature, metadata, plc or fdc)")
		dbCmd.AddCommand(c)
	}
}

// selectDatabases returns every database name, or only when it is one.
func selectDatabases(only string) ([]string, error) {
	if only == "" {
		return db.Names, nil
	}
	for _, name := range db.Names {
		if name == only {
			return []string{name}, nil
		}
	}
	return nil, fmt.Errorf("unknown database %q", only)
}

// migrationURL gives every database its own version table, so that
// several of them may share one PostgreSQL database.
func migrationURL(dsn, name string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid %s database URL: %w", name, err)
	}
	q := u.Query()
	q.Set("x-migrations-table", name+"_schema_migrations")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func openMigrate(cfg *config.Settings, name string) (*migrate.Migrate, error) {
	dbURL, err := migrationURL(cfg.DatabaseURLs()[name], name)
	if err != nil {
		return nil, err
	}
	m, err := createMigrateInstance(name, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance for %s: %w", name, err)
	}
	return m, nil
}

func runMigrations(cfg *config.Settings, only string) error {
	names, err := selectDatabases(only)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := migrateUp(cfg, name); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func migrateUp(cfg *config.Settings, name string) error {
	m, err := openMigrate(cfg, name)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Printf("%s: up to date\n", name)
			return nil
		}
		return err
	}

	version, _, _ := m.Version()
	fmt.Printf("%s: migrated to version %d\n", name, version)
	return nil
}

func runMigrationsDown(cfg *config.Settings, only string, steps int) error {
	names, err := selectDatabases(only)
	if err != nil {
		return err
	}

	for _, name := range names {
		m, err := openMigrate(cfg, name)
		if err != nil {
			return err
		}

		fmt.Printf("%s: rolling back %d migration(s)...\n", name, steps)
		err = m.Steps(-steps)
		version, _, _ := m.Version()
		_, _ = m.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Printf("%s: rolled back to version %d\n", name, version)
	}
	return nil
}

func showMigrationStatus(cfg *config.Settings, only string) error {
	names, err := selectDatabases(only)
	if err != nil {
		return err
	}

	for _, name := range names {
		m, err := openMigrate(cfg, name)
		if err != nil {
			return err
		}
		version, dirty, err := m.Version()
		_, _ = m.Close()

		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Printf("%s: no migrations applied\n", name)
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		case dirty:
			fmt.Printf("%s: version %d (dirty)\n", name, version)
		default:
			fmt.Printf("%s: version %d\n", name, version)
		}
	}
	return nil
}
