package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/objectstore"
	"github.com/onepredict/lges-query-server/pkg/server/middleware"
	"github.com/onepredict/lges-query-server/pkg/server/store"
)

// APIPrefix is the path every data endpoint is served under
const APIPrefix = "/api/v1"

type Server struct {
	Config  *config.Settings
	Stores  *store.Stores
	Objects objectstore.Store
	Logger  *slog.Logger

	// Router serves the status page and the docs; API is the /api/v1 subrouter.
	Router *mux.Router
	API    *mux.Router

	// Now returns the current time in the site time zone.
	Now func() time.Time

	// Settings returns the live configuration. It follows config.Get when
	// the file is watched.
	Settings func() *config.Settings

	srv *http.Server
}

func NewServer(
	cfg *config.Settings,
	stores *store.Stores,
	objects objectstore.Store,
	logger *slog.Logger,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	api := router.PathPrefix(APIPrefix).Subrouter()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept", "Origin", "X-Requested-With"}),
	)

	srv := &http.Server{
		// Wrapping the router, not router.Use, so unmatched routes get an id too.
		Handler: handlers.LoggingHandler(os.Stdout, cors(middleware.RequestID(logger)(router))),
		Addr:    host + ":" + port,
		// Raw waveform responses can take a while on a busy object store.
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	s := &Server{
		Config:  cfg,
		Stores:  stores,
		Objects: objects,
		Logger:  logger,
		Router:  router,
		API:     api,
		Settings: func() *config.Settings {
			return cfg
		},
		srv: srv,
	}
	// Follows Settings, so a reloaded timezone applies to later requests.
	s.Now = func() time.Time {
		return s.Settings().Now()
	}
	return s
}

// Handler returns the full middleware chain in front of Router.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Start() error {
	s.Logger.Info("listening", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for running requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
