// Package db provides database connection utilities for the query server.
//
// The server works against five PostgreSQL databases. Connect opens one of
// them with GORM; Open opens all five from the settings and returns them as
// Connections.
//
// # Connection
//
//	conns, err := db.Open(config.Get())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conns.Close()
//
// # Environment Variables
//
//   - SERVICEDB_URI, FEATUREDB_URI, METADATADB_URI, PLCDB_URI, FDCDB_URI
//   - LOG_LEVEL: Set to "debug" or "trace" for SQL query logging
//
// Every session runs in the configured TIMEZONE so that timestamps without
// a zone are read as local plant time.
package db
