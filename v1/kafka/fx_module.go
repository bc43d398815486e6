package kafka

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule provides the Kafka metadata client to an fx application.
// Include it only when brokers are configured; packages that consume
// the client declare it optional and work without it.
var FXModule = fx.Module("kafka",
	fx.Provide(NewMetadataClientWithDI),
)

// MetadataClientParams defines the dependencies for creating a
// MetadataClient with DI.
type MetadataClientParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewMetadataClientWithDI creates a metadata client for dependency
// injection.
func NewMetadataClientWithDI(params MetadataClientParams) (*MetadataClient, error) {
	cfg := params.Config
	if cfg.Logger == nil {
		cfg.Logger = params.Logger
	}
	return NewMetadataClient(cfg)
}

// RegisterMetadataClientLifecycle adds fx lifecycle logging for the
// client.
func RegisterMetadataClientLifecycle(lc fx.Lifecycle, client *MetadataClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Kafka metadata client ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
