package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lib/pq"

	"github.com/onepredict/lges-query-server/pkg/config"
)

// Names of the databases, in initialisation order.
var Names = []string{"service", "feature", "metadata", "plc", "fdc"}

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL
	URL string
	// Timezone is applied to every session when set
	Timezone string
}

// Connect establishes a database connection.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	// Default to silent logging unless LOG_LEVEL=debug is set
	logMode := logger.Silent
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "trace":
		logMode = logger.Info
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  WithTimezone(cfg.URL, cfg.Timezone),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// WithTimezone adds a timezone runtime parameter to a URL style DSN.
// Key/value DSNs and empty zones are returned unchanged.
func WithTimezone(dsn, tz string) string {
	if tz == "" {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return dsn
	}
	q := u.Query()
	if q.Get("timezone") == "" {
		q.Set("timezone", tz)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Connections groups the five databases the server reads and writes
type Connections struct {
	Service  *gorm.DB
	Feature  *gorm.DB
	Metadata *gorm.DB
	PLC      *gorm.DB
	FDC      *gorm.DB
}

// Open connects to every database named in the settings
func Open(cfg *config.Settings) (*Connections, error) {
	urls := cfg.DatabaseURLs()
	conns := &Connections{}

	for _, name := range Names {
		database, err := Connect(Config{URL: urls[name], Timezone: cfg.Timezone})
		if err != nil {
			_ = conns.Close()
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		conns.assign(name, database)
	}
	return conns, nil
}

func (c *Connections) assign(name string, database *gorm.DB) {
	switch name {
	case "service":
		c.Service = database
	case "feature":
		c.Feature = database
	case "metadata":
		c.Metadata = database
	case "plc":
		c.PLC = database
	case "fdc":
		c.FDC = database
	}
}

// ByName returns the connection registered under name, or nil
func (c *Connections) ByName(name string) *gorm.DB {
	switch name {
	case "service":
		return c.Service
	case "feature":
		return c.Feature
	case "metadata":
		return c.Metadata
	case "plc":
		return c.PLC
	case "fdc":
		return c.FDC
	}
	return nil
}

// Close closes every open connection
func (c *Connections) Close() error {
	var errs []error
	for _, name := range Names {
		database := c.ByName(name)
		if database == nil {
			continue
		}
		sqlDB, err := database.DB()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// DatabaseName returns the database named in a postgres URL
func DatabaseName(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return "", fmt.Errorf("database URL %q names no database", u.Redacted())
	}
	return name, nil
}

// MaintenanceURL points dsn at the "postgres" maintenance database
func MaintenanceURL(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	u.Path = "/postgres"
	return u.String(), nil
}

// EnsureDatabase creates the database named in dsn when it does not exist.
// It reports whether the database was created.
func EnsureDatabase(dsn string) (bool, error) {
	name, err := DatabaseName(dsn)
	if err != nil {
		return false, err
	}
	adminURL, err := MaintenanceURL(dsn)
	if err != nil {
		return false, err
	}

	admin, err := sql.Open("postgres", adminURL)
	if err != nil {
		return false, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = admin.Close() }()

	return ensureDatabase(admin, name)
}

func ensureDatabase(admin *sql.DB, name string) (bool, error) {
	var exists bool
	err := admin.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}

	if _, err := admin.Exec(`CREATE DATABASE ` + pq.QuoteIdentifier(name)); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return true, nil
}
