// Command querysrvctl runs the LGES query server.
//
// The query server is the HTTP backend of the motor diagnosis dashboard of
// the battery lamination lines. It reads features, metadata and PLC state
// from five PostgreSQL databases and raw current waveforms from an S3
// compatible object store.
//
// # Quick Start
//
//	# Create the databases, migrate them and load the seed data
//	querysrvctl db init
//
//	# Start the server on 0.0.0.0:19000
//	querysrvctl server
//
// # Environment Variables
//
//   - SERVICEDB_URI, FEATUREDB_URI, METADATADB_URI, PLCDB_URI, FDCDB_URI:
//     PostgreSQL connection strings
//   - ENDPOINT_URL, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, VERIFY,
//     BUCKET_NAME: object store
//   - TIMEZONE, LINE_NUM: site
//   - LOG_LEVEL, LOG_DIR: logging
//   - QUERY_SERVER_CONFIG_PATH: directory of query-server.yml
//   - AUDIT_DATABASE_URL: optional audit message table
package main
