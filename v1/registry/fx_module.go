package registry

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the Schema Registry client.
// This module registers the client with the Fx dependency injection framework,
// making it available to other components in the application.
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:       os.Getenv("SCHEMA_REGISTRY_URL"),
//	                APIKey:    os.Getenv("SCHEMA_REGISTRY_API_KEY"),
//	                APISecret: os.Getenv("SCHEMA_REGISTRY_API_SECRET"),
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("registry",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRegistryLifecycle),
)

// RegistryParams groups the dependencies needed to create a Schema Registry client
type RegistryParams struct {
	fx.In

	Config Config
}

// NewClientWithDI creates a new Schema Registry client using dependency injection.
// Dependencies are automatically provided via the RegistryParams struct, which
// embeds fx.In. The client is provided to the container as the Registry interface.
func NewClientWithDI(params RegistryParams) (Registry, error) {
	return NewClient(params.Config)
}

// RegistryLifecycleParams groups the dependencies needed for lifecycle management
type RegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  Registry
}

// RegisterRegistryLifecycle registers the Schema Registry client with the fx
// lifecycle system. The client is a stateless HTTP client, so the hooks only
// mark availability; any future cleanup logic can be added here.
func RegisterRegistryLifecycle(params RegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: Schema Registry client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Schema Registry client shutdown")
			// HTTP client cleanup is handled automatically by Go runtime
			return nil
		},
	})
}
