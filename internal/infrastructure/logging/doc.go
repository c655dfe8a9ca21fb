// Package logging wraps log/slog for the overlay daemon.
//
// Every record carries the service name and version, and the handler
// format, level, and destination come from the logging section of
// config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json for machines, text for humans
//	  output: "stdout"   # stdout, stderr
//
// Construct one logger at startup and derive component loggers from it:
//
//	log := logging.New(cfg.Logging, version)
//	apiLog := log.With("component", "api")
//	apiLog.Info("listening", "port", 8080)
//
// Never log broker passwords or storage tokens.
package logging
