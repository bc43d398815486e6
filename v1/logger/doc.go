// Package logger provides structured logging for the schemawarden services.
//
// It wraps Uber's Zap logger behind a small surface: leveled methods that take
// a message, an optional error and optional field maps, plus *WithContext
// variants that attach OpenTelemetry trace correlation fields when tracing is
// enabled. Output is JSON on stderr with ISO8601 timestamps, the process ID
// and the service name attached to every entry.
//
// # Direct Usage (Without FX)
//
//	import "github.com/stackmill/schemawarden/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level: logger.Info,
//	})
//
//	log.Info("audit completed", nil, map[string]interface{}{
//		"subjects": 412,
//		"status":   "WARNING",
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: "info", ServiceName: "schemawarden"}
//		}),
//		// ... other modules
//	)
//	app.Run()
//
// # Consumer Packages
//
// Packages in this repository do not import the logger directly; each declares
// a local Logger interface covering the methods it uses and accepts any
// implementation. That keeps the packages independently usable and mockable:
//
//	type Logger interface {
//		Info(msg string, err error, fields ...map[string]interface{})
//		Error(msg string, err error, fields ...map[string]interface{})
//	}
//
// # Tracing Integration
//
// When EnableTracing is set, the *WithContext methods extract the active span
// from the context and add trace_id and span_id fields to the entry. Entries
// logged without a valid span in the context are emitted without those fields.
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
