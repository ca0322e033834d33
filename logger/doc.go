// Package logger provides structured logging for restclient using zerolog.
//
// The rest facade logs one debug line per exchange and a warning when a
// response body could not be read. Libraries embedding the client usually
// pass their own Logger through rest.WithLogger; otherwise Nop is used.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(cfg.Logging, "restclient").WithComponent("rest")
//	log.Debug("request completed", logger.Fields(logger.FieldStatus, 200))
package logger
