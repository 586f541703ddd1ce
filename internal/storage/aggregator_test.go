package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func rec(name, url string) *types.ProductRecord {
	return &types.ProductRecord{Name: name, ProductURL: url, InStock: true}
}

func TestDedupe(t *testing.T) {
	records := []*types.ProductRecord{
		rec("Classic Hoodie", "https://shop.example.com/products/hoodie"),
		rec("classic   HOODIE", "https://shop.example.com/products/hoodie"),
		rec("Classic Hoodie", "https://shop.example.com/products/hoodie-2"),
		rec("Basic Tee", "https://shop.example.com/products/tee"),
	}

	out := Dedupe(records)
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	if out[0].Name != "Classic Hoodie" {
		t.Errorf("first occurrence should win, got %q", out[0].Name)
	}
}

func TestAggregatorPersist(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "out.json"), testLogger)
	if err != nil {
		t.Fatal(err)
	}

	agg := NewAggregator(store, 2, testLogger)
	business := &types.Business{Name: "Acme", WebsiteURL: "https://shop.example.com"}
	records := []*types.ProductRecord{
		rec("Classic Hoodie", "https://shop.example.com/products/hoodie"),
		rec("Classic Hoodie", "https://shop.example.com/products/hoodie"),
		rec("Basic Tee", "https://shop.example.com/products/tee"),
		rec("Field Jacket", "https://shop.example.com/products/jacket"),
	}

	written, err := agg.Persist(context.Background(), business, records)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if written != 3 {
		t.Errorf("written = %d, want 3 after dedupe", written)
	}

	if business.ID == "" {
		t.Error("business ID should be assigned")
	}
	if business.CreatedAt.IsZero() {
		t.Error("business CreatedAt should be assigned")
	}

	for _, r := range records[:1] {
		if r.ID == "" || r.BusinessID != business.ID || r.CreatedAt.IsZero() {
			t.Errorf("record not prepared for storage: %+v", r)
		}
	}

	businesses, err := store.ListBusinesses(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(businesses) != 1 || businesses[0].Name != "Acme" {
		t.Errorf("businesses = %+v", businesses)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

// A crawl that produced nothing must not leave a business row behind.
func TestAggregatorPersistNothing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "out.json"), testLogger)
	if err != nil {
		t.Fatal(err)
	}

	agg := NewAggregator(store, 10, testLogger)
	business := &types.Business{Name: "Empty Shop", WebsiteURL: "https://empty.example.com"}

	written, err := agg.Persist(context.Background(), business, nil)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}

	businesses, err := store.ListBusinesses(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(businesses) != 0 {
		t.Errorf("business row persisted with zero products: %+v", businesses[0])
	}
}

// failingStore rejects every product batch.
type failingStore struct {
	*FileStore
}

func (s *failingStore) InsertProducts(context.Context, []*types.ProductRecord) (int, error) {
	return 0, &types.StorageError{Backend: "failing", Err: errors.New("disk full")}
}

func TestAggregatorPersistPartialFailure(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "out.json"), testLogger)
	if err != nil {
		t.Fatal(err)
	}

	agg := NewAggregator(&failingStore{fs}, 1, testLogger)
	written, err := agg.Persist(context.Background(), &types.Business{Name: "Acme"}, []*types.ProductRecord{
		rec("Classic Hoodie", "https://shop.example.com/products/hoodie"),
		rec("Basic Tee", "https://shop.example.com/products/tee"),
	})

	if written != 0 {
		t.Errorf("written = %d", written)
	}
	var se *types.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *types.StorageError", err)
	}
}
