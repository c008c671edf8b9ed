// Package server provides the HTTP server of the query server.
//
// It uses gorilla/mux for routing and gorilla/handlers for access logs and
// CORS. Every data endpoint lives on the API subrouter under /api/v1; the
// status page, the API docs and the static assets live on the root router.
//
// # Server Setup
//
//	conns, err := db.Open(cfg)
//	stores := gorm.NewStores(conns, cfg.Now)
//	objects, err := objectstore.NewMinio(objectstore.OptionsFromSettings(cfg))
//	srv := server.NewServer(cfg, stores, objects, logger, "0.0.0.0", "19000")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Config: the settings the server was started with
//   - Stores: one store per database
//   - Objects: the raw waveform object store
//   - Logger: the process logger, tagged per request by middleware
//   - Router, API: the root router and the /api/v1 subrouter
//   - Now: the clock, in the site time zone
//   - Settings: the live configuration, reloaded when the file is watched
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - /api/v1/data/dashboard - dashboard cards per motor
//   - /api/v1/data/detail/{part} - feature history of a part page
//   - /api/v1/data/trend/{kind} - trend charts
//   - /api/v1/setting-client/... - settings, metadata, raw data, PLC and FDC
//   - /api/v1/fdc/fdc-feature - features at one acquisition time
//   - /api/v1/test/insert-minio - store a test waveform
package server
