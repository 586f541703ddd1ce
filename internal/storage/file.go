package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// FileStore buffers everything in memory and writes a single JSON
// document on Close. Useful for local runs without a database.
type FileStore struct {
	path       string
	businesses []*types.Business
	products   []*types.ProductRecord
	mu         sync.Mutex
	logger     *slog.Logger
}

type fileDocument struct {
	Businesses []*types.Business      `json:"businesses"`
	Products   []*types.ProductRecord `json:"products"`
}

// NewFileStore creates a JSON file storage at outputPath.
func NewFileStore(outputPath string, logger *slog.Logger) (*FileStore, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &FileStore{
		path:   outputPath,
		logger: logger.With("component", "file_storage"),
	}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) InsertBusiness(_ context.Context, b *types.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.businesses {
		if existing.ID == b.ID {
			s.businesses[i] = b
			return nil
		}
	}
	s.businesses = append(s.businesses, b)
	return nil
}

func (s *FileStore) InsertProducts(_ context.Context, records []*types.ProductRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, records...)
	s.logger.Debug("products buffered", "count", len(records), "total", len(s.products))
	return len(records), nil
}

func (s *FileStore) ListBusinesses(_ context.Context) ([]*types.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.Business, len(s.businesses))
	copy(out, s.businesses)
	return out, nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fileDocument{
		Businesses: s.businesses,
		Products:   s.products,
	}); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	s.logger.Info("JSON written", "path", s.path,
		"businesses", len(s.businesses), "products", len(s.products))
	return nil
}
