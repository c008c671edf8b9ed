// Package config provides configuration management for the query server.
//
// Settings are loaded from defaults, an optional YAML file and environment
// variables, in that order of precedence. Each attribute remembers where its
// value came from so that `querysrvctl configuration show` can report it.
//
// # Configuration Sources
//
//   - Defaults (bucket "lami", time zone "Asia/Seoul", line "1")
//   - $QUERY_SERVER_CONFIG_PATH/query-server.yml (optional)
//   - Environment variables (highest precedence)
//
// # Key Configuration Options
//
//   - SERVICEDB_URI, FEATUREDB_URI, METADATADB_URI, PLCDB_URI, FDCDB_URI
//   - ENDPOINT_URL, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, VERIFY, BUCKET_NAME
//   - TIMEZONE, LINE_NUM
//   - LOG_LEVEL, LOG_DIR
//
// # Reloading
//
// Watch follows the config file with fsnotify and reloads the global
// settings on every write:
//
//	go config.Watch(ctx, cfg.ConfigFilePath(), func(err error) { ... })
package config
