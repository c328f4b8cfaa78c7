package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
)

// NewRemoteStore constructs the [RemoteStore] implementation selected by
// cfg.Backend.
func NewRemoteStore(ctx context.Context, cfg config.Remote, logger *logger.Logger) (RemoteStore, error) {
	switch cfg.Backend {
	case config.BackendREST:
		return NewRESTRemoteStore(cfg, logger)
	case config.BackendPostgres:
		return NewPostgresRemoteStore(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown remote backend %q", cfg.Backend)
	}
}
