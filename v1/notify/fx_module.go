package notify

import (
	"context"
	"fmt"
	"io"
	"log"

	"go.uber.org/fx"
)

// FXModule is an fx module that provides the event notifier.
// It registers the config-driven notifier constructor for dependency
// injection and closes backends holding broker connections on
// shutdown.
var FXModule = fx.Module("notify",
	fx.Provide(NewNotifierWithDI),
	fx.Invoke(RegisterNotifierLifecycle),
)

// NotifierParams groups the dependencies needed to create a Notifier
// via dependency injection.
type NotifierParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewNotifierWithDI creates the Notifier selected by the
// configuration. An empty type falls back to DefaultType.
func NewNotifierWithDI(params NotifierParams) (Notifier, error) {
	notifierType := params.Config.Type
	if notifierType == "" {
		notifierType = DefaultType
	}

	switch notifierType {
	case TypeNop:
		return NopNotifier{}, nil
	case TypeKafka:
		return NewKafkaNotifier(params.Config.Kafka, params.Logger)
	case TypeRabbit:
		return NewRabbitNotifier(params.Config.Rabbit, params.Logger)
	default:
		return nil, fmt.Errorf("unknown notifier type: %s", notifierType)
	}
}

// NotifierLifecycleParams groups the dependencies needed for Notifier
// lifecycle management.
type NotifierLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Notifier  Notifier
}

// RegisterNotifierLifecycle registers lifecycle hooks for the
// notifier.
func RegisterNotifierLifecycle(params NotifierLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Notifier ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if closer, ok := params.Notifier.(io.Closer); ok {
				return closer.Close()
			}
			return nil
		},
	})
}
