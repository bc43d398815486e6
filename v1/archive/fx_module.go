package archive

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/fx"
)

// FXModule provides the archive to an fx application, selecting the
// backend from configuration.
var FXModule = fx.Module("archive",
	fx.Provide(NewArchiveWithDI),
)

// ArchiveParams defines the dependencies for creating an Archive with
// DI.
type ArchiveParams struct {
	fx.In

	Config Config
	Logger Logger `optional:"true"`
}

// NewArchiveWithDI creates the configured archive backend for
// dependency injection.
func NewArchiveWithDI(params ArchiveParams) (Archive, error) {
	cfg := params.Config
	if cfg.Type == "" {
		cfg.Type = DefaultType
	}

	switch cfg.Type {
	case TypeLocal:
		return NewLocalArchive(cfg.Local, params.Logger)
	case TypeMinio:
		return NewMinioArchive(context.Background(), cfg.Minio, params.Logger)
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}

// RegisterArchiveLifecycle adds fx lifecycle logging for the archive.
func RegisterArchiveLifecycle(lc fx.Lifecycle, archive Archive) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Archive ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
