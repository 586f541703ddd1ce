package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Store is the interface for all storage backends.
type Store interface {
	// InsertBusiness persists a business, updating it if the ID exists.
	InsertBusiness(ctx context.Context, b *types.Business) error

	// InsertProducts persists a batch of product records and returns
	// how many were written.
	InsertProducts(ctx context.Context, records []*types.ProductRecord) (int, error)

	// ListBusinesses returns every stored business.
	ListBusinesses(ctx context.Context) ([]*types.Business, error)

	// Name returns the storage backend identifier.
	Name() string

	// Close flushes pending writes and releases resources.
	Close() error
}

// Open creates the storage backend named by the config.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Type {
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN, logger)
	case "mongodb":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	case "file":
		return NewFileStore(cfg.OutputPath, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
