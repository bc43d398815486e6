package docs

import (
	"go.uber.org/fx"

	"github.com/stackmill/schemawarden/v1/registry"
)

// FXModule provides the documentation generator to an fx application.
var FXModule = fx.Module("docs",
	fx.Provide(NewGeneratorWithDI),
)

// GeneratorParams defines the dependencies for creating a Generator
// with DI. The Kafka metadata client and logger are optional; without
// them documentation omits broker metadata and stays silent.
type GeneratorParams struct {
	fx.In

	Registry registry.Registry
	Metadata TopicMetadata `optional:"true"`
	Logger   Logger        `optional:"true"`
}

// NewGeneratorWithDI creates a documentation generator for dependency
// injection.
func NewGeneratorWithDI(params GeneratorParams) (*Generator, error) {
	return NewGenerator(params.Registry, params.Metadata, params.Logger)
}
