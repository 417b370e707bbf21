// Package logger provides slog attribute helpers shared across the module.
//
// All helpers return an empty slog.Attr for nil input, so call sites never
// need explicit nil checks:
//
//	log.Info("session finished",
//		logger.Error(err),
//		logger.Elapsed(start),
//	)
package logger
