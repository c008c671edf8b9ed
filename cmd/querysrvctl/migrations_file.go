//go:build !embed_migrations

package main

import (
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const defaultMigrationsPath = "db/migrations"

func migrationsPath() string {
	if path := os.Getenv("QUERY_SERVER_MIGRATIONS_PATH"); path != "" {
		return path
	}
	return defaultMigrationsPath
}

func createMigrateInstance(name, dbURL string) (*migrate.Migrate, error) {
	return migrate.New("file://"+filepath.Join(migrationsPath(), name), dbURL)
}
