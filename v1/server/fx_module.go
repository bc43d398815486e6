package server

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/docs"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/lifecycle"
	"github.com/stackmill/schemawarden/v1/logger"
	"github.com/stackmill/schemawarden/v1/metrics"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
	"github.com/stackmill/schemawarden/v1/tracer"
)

// FXModule is an fx module that provides the administration server and
// runs it with the application lifecycle.
var FXModule = fx.Module("server",
	fx.Provide(NewServerWithDI),
	fx.Invoke(RegisterServerLifecycle),
)

// ServerParams groups the dependencies needed to create the Server via
// dependency injection. The optional collaborators degrade gracefully
// when absent from the container.
type ServerParams struct {
	fx.In

	Config    Config
	Auditor   *health.Auditor
	Manager   *lifecycle.Manager
	Generator *docs.Generator
	Archive   archive.Archive
	Metadata  docs.TopicMetadata `optional:"true"`
	Store     oplog.Store        `optional:"true"`
	Notifier  notify.Notifier    `optional:"true"`
	Metrics   *metrics.Metrics   `optional:"true"`
	Tracer    *tracer.Tracer     `optional:"true"`
	Logger    *logger.Logger     `optional:"true"`
}

// NewServerWithDI creates the Server from injected dependencies.
func NewServerWithDI(params ServerParams) (*Server, error) {
	deps := Dependencies{
		Auditor:   params.Auditor,
		Manager:   params.Manager,
		Generator: params.Generator,
		Archive:   params.Archive,
		Metadata:  params.Metadata,
		Store:     params.Store,
		Notifier:  params.Notifier,
		Metrics:   params.Metrics,
		Tracer:    params.Tracer,
	}
	if params.Logger != nil {
		deps.Logger = params.Logger
	}
	return NewServer(params.Config, deps)
}

// RegisterServerLifecycle starts the server in a background goroutine
// on application start and shuts it down gracefully on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, server *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting administration server", nil, map[string]interface{}{
					"address": server.Address(),
				})

				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Error starting administration server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down administration server", nil, nil)
			return server.Shutdown(ctx)
		},
	})
}
