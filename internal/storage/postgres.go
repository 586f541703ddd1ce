package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS businesses (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	website_url TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	business_id TEXT NOT NULL REFERENCES businesses(id),
	name        TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	description TEXT NOT NULL,
	image_url   TEXT NOT NULL DEFAULT '',
	product_url TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	brand       TEXT NOT NULL DEFAULT '',
	colors      TEXT[] NOT NULL DEFAULT '{}',
	sizes       TEXT[] NOT NULL DEFAULT '{}',
	in_stock    BOOLEAN NOT NULL DEFAULT TRUE,
	source_url  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_business ON products (business_id);
`

// PostgresStore writes businesses and products to Postgres.
type PostgresStore struct {
	pool   *pgxpool.Pool
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewPostgresStore connects, pings, and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger.With("component", "postgres_storage"),
	}, nil
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) InsertBusiness(ctx context.Context, b *types.Business) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO businesses (id, name, website_url, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, website_url = EXCLUDED.website_url`,
		b.ID, b.Name, b.WebsiteURL, b.CreatedAt)
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("insert business: %w", err)}
	}
	return nil
}

func (s *PostgresStore) InsertProducts(ctx context.Context, records []*types.ProductRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO products
				(id, business_id, name, price, description, image_url, product_url,
				 category, brand, colors, sizes, in_stock, source_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO NOTHING`,
			r.ID, r.BusinessID, r.Name, r.Price, r.Description, r.ImageURL, r.ProductURL,
			r.Category, r.Brand, r.Colors, r.Sizes, r.InStock, r.SourceURL, r.CreatedAt)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	var firstErr error
	for range records {
		if _, err := results.Exec(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
	}
	if firstErr != nil {
		return written, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("insert products: %w", firstErr)}
	}

	s.mu.Lock()
	s.count += written
	s.mu.Unlock()
	s.logger.Debug("products stored", "count", written, "total", s.count)
	return written, nil
}

func (s *PostgresStore) ListBusinesses(ctx context.Context) ([]*types.Business, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, website_url, created_at FROM businesses ORDER BY created_at`)
	if err != nil {
		return nil, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("list businesses: %w", err)}
	}
	defer rows.Close()

	var out []*types.Business
	for rows.Next() {
		b := &types.Business{}
		if err := rows.Scan(&b.ID, &b.Name, &b.WebsiteURL, &b.CreatedAt); err != nil {
			return nil, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("scan business: %w", err)}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &types.StorageError{Backend: s.Name(), Err: err}
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.logger.Info("postgres storage closing", "total_products", s.count)
	s.pool.Close()
	return nil
}
