package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/audit"
	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/db"
	"github.com/onepredict/lges-query-server/pkg/logging"
	"github.com/onepredict/lges-query-server/pkg/objectstore"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/endpoints"
	gormstore "github.com/onepredict/lges-query-server/pkg/server/store/gorm"
)

const shutdownTimeout = 10 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "19000"
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the query server",
	Long: `Run the query server.

The database and object store settings come from query-server.yml and the
environment, see "querysrvctl configuration show".

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		watch, _ := cmd.Flags().GetBool("watch-config")

		if err := runServer(host, port, noMigrate, watch); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-config", false, "reload query-server.yml when it changes")
}

func runServer(host, port string, noMigrate, watch bool) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	audit.SetErrorLogger(logging.Named(logger, "audit"))

	if !noMigrate {
		logger.Info("running database migrations")
		if err := runMigrations(cfg, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	conns, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conns.Close() }()

	objects, err := objectstore.NewMinio(objectstore.OptionsFromSettings(cfg))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := func() *config.Settings { return cfg }
	if watch {
		settings = config.Get
	}
	now := func() time.Time { return settings().Now() }

	s := server.NewServer(cfg, gormstore.NewStores(conns, now), objects, logger, host, port)
	s.Settings = settings
	if watch {
		watchLog := logging.Named(logger, "config")
		go func() {
			err := config.Watch(ctx, cfg.ConfigFilePath(), func(err error) {
				if err != nil {
					watchLog.Error("reload failed", "error", err)
					return
				}
				watchLog.Info("configuration reloaded", "path", cfg.ConfigFilePath())
			})
			if err != nil {
				watchLog.Error("watch stopped", "error", err)
			}
		}()
	}
	endpoints.RegisterAll(s)

	errs := make(chan error, 1)
	go func() { errs <- s.Start() }()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
