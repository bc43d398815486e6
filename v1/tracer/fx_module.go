package tracer

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule is an fx module that provides the tracer client. It
// registers the constructor for dependency injection and sets up a
// shutdown hook so pending spans are flushed on application
// termination.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers a shutdown hook for the tracer.
// Shutdown flushes any spans still buffered in the provider; a nil
// provider (construction failed but the fatal logger did not exit)
// is skipped.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: shutting down tracer...")
			if tracer.tracer == nil {
				log.Println("INFO: tracer is nil, skipping shutdown")
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
