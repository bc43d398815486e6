package health

import (
	"go.uber.org/fx"

	"github.com/stackmill/schemawarden/v1/registry"
)

// FXModule is an fx.Module that provides the health auditor.
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    health.FXModule,
//	    fx.Provide(
//	        func() health.Config {
//	            return health.Config{Endpoint: "https://..."}
//	        },
//	    ),
//	)
var FXModule = fx.Module("health",
	fx.Provide(
		NewAuditorWithDI,
	),
)

// AuditorParams groups the dependencies needed to create a health auditor
type AuditorParams struct {
	fx.In

	Registry registry.Registry
	Config   Config
	Logger   Logger `optional:"true"`
}

// NewAuditorWithDI creates a new health auditor using dependency injection.
// An optional logger from the container is injected into the config before
// delegating to NewAuditor.
func NewAuditorWithDI(params AuditorParams) (*Auditor, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	return NewAuditor(params.Registry, params.Config)
}
