// Package logging builds the structured logger used across the query server.
//
// Records go to two sinks: a coloured console line per record and a JSON
// file under the log directory, rotated by lumberjack. The file only
// receives INFO and above.
//
//	logger, closer, err := logging.New(logging.Options{Level: "debug", Dir: "./log"})
//	defer closer.Close()
//	logging.Named(logger, "dashboard").Info("served", "equipment_id", 3)
package logging
