package oplog

import (
	"context"
	"fmt"
	"io"
	"log"

	"go.uber.org/fx"
)

// FXModule is an fx module that provides the operation log store.
// It registers the config-driven store constructor for dependency
// injection and sets up lifecycle hooks so backends holding external
// connections are closed on shutdown.
var FXModule = fx.Module("oplog",
	fx.Provide(NewStoreWithDI),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies needed to create a Store via
// dependency injection.
//
// The embedded fx.In marker enables automatic injection of the struct
// fields from the dependency container.
type StoreParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewStoreWithDI creates the Store selected by the configuration.
// An empty type falls back to DefaultType.
func NewStoreWithDI(params StoreParams) (Store, error) {
	storeType := params.Config.Type
	if storeType == "" {
		storeType = DefaultType
	}

	switch storeType {
	case TypeMemory:
		return NewMemoryStore(params.Config.Memory.Capacity), nil
	case TypePostgres:
		return NewPostgresStore(params.Config.Postgres, params.Logger)
	default:
		return nil, fmt.Errorf("unknown oplog store type: %s", storeType)
	}
}

// StoreLifecycleParams groups the dependencies needed for Store
// lifecycle management.
type StoreLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Store     Store
}

// RegisterStoreLifecycle registers lifecycle hooks for the operation
// log store.
func RegisterStoreLifecycle(params StoreLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Operation log ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if closer, ok := params.Store.(io.Closer); ok {
				return closer.Close()
			}
			return nil
		},
	})
}
