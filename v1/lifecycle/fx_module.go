package lifecycle

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/stackmill/schemawarden/v1/registry"
)

// FXModule provides the lifecycle manager to an fx application.
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    lifecycle.FXModule,
//	    fx.Invoke(func(m *lifecycle.Manager) { ... }),
//	)
var FXModule = fx.Module("lifecycle",
	fx.Provide(NewManagerWithDI),
)

// ManagerParams defines the dependencies for creating a Manager with DI.
type ManagerParams struct {
	fx.In

	Registry registry.Registry
	Logger   Logger `optional:"true"`
}

// NewManagerWithDI creates a lifecycle manager for dependency injection.
func NewManagerWithDI(params ManagerParams) (*Manager, error) {
	return NewManager(params.Registry, params.Logger)
}

// RegisterManagerLifecycle adds fx lifecycle logging for the manager.
func RegisterManagerLifecycle(lc fx.Lifecycle, manager *Manager) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Lifecycle manager ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
