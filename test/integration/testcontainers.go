package integration

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/db"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	Container  testcontainers.Container
	Settings   *config.Settings
	Conns      *db.Connections
	Instance   *ServerInstance
	ServerURL  string
	HTTPClient *http.Client
}

// NewTestContext starts PostgreSQL, creates and seeds the five databases
// and starts a query server against them.
// Modes:
//   - Inline mode (default): the server runs in-process with an in-memory object store
//   - Binary mode: set QUERY_SERVER_BINARY to the path of the querysrvctl
//     binary; ENDPOINT_URL and the object store credentials are passed through
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("query"),
		tcpostgres.WithPassword("query"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	cfg := testSettings(host, port.Port())
	if err := prepareDatabases(cfg, projectRoot); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	conns, err := db.Open(cfg)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	if _, err := db.Seed(conns, db.SeedOptions{
		Dir:    filepath.Join(projectRoot, "yaml"),
		Bucket: cfg.BucketName,
		Line:   cfg.LineNum,
	}); err != nil {
		_ = conns.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to seed databases: %w", err)
	}

	instance, err := StartServer(cfg, conns)
	if err != nil {
		_ = conns.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	return &TestContext{
		Container:  pgContainer,
		Settings:   cfg,
		Conns:      conns,
		Instance:   instance,
		ServerURL:  instance.ServerURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func testSettings(host, port string) *config.Settings {
	cfg := config.New()
	dsn := func(name string) string {
		return fmt.Sprintf("postgres://query:query@%s:%s/%s?sslmode=disable", host, port, name)
	}
	cfg.ServiceDBURI = dsn("servicedb")
	cfg.FeatureDBURI = dsn("featuredb")
	cfg.MetadataDBURI = dsn("metadatadb")
	cfg.PLCDBURI = dsn("plcdb")
	cfg.FDCDBURI = dsn("fdcdb")
	cfg.EndpointURL = "http://127.0.0.1:9000"
	if endpoint := os.Getenv("ENDPOINT_URL"); endpoint != "" {
		cfg.EndpointURL = endpoint
	}
	cfg.LogDir = ""
	return cfg
}

// prepareDatabases creates the five databases and migrates them.
func prepareDatabases(cfg *config.Settings, projectRoot string) error {
	urls := cfg.DatabaseURLs()
	for _, name := range db.Names {
		if _, err := db.EnsureDatabase(urls[name]); err != nil {
			return fmt.Errorf("failed to create %s database: %w", name, err)
		}

		source := "file://" + filepath.Join(projectRoot, "db", "migrations", name)
		m, err := migrate.New(source, urls[name]+"&x-migrations-table="+name+"_schema_migrations")
		if err != nil {
			return fmt.Errorf("failed to load %s migrations: %w", name, err)
		}
		err = m.Up()
		_, _ = m.Close()
		if err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
		log.Printf("migrated %s", name)
	}
	return nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Instance != nil {
		tc.Instance.Stop()
	}
	if tc.Conns != nil {
		_ = tc.Conns.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}
