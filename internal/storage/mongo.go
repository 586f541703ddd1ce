package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// MongoStore writes businesses and products to MongoDB collections.
type MongoStore struct {
	client     *mongo.Client
	businesses *mongo.Collection
	products   *mongo.Collection
	mu         sync.Mutex
	count      int
	logger     *slog.Logger
}

// NewMongoStore connects and pings before returning a usable store.
func NewMongoStore(ctx context.Context, uri, database string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:     client,
		businesses: db.Collection("businesses"),
		products:   db.Collection("products"),
		logger:     logger.With("component", "mongo_storage"),
	}, nil
}

func (s *MongoStore) Name() string { return "mongodb" }

func (s *MongoStore) InsertBusiness(ctx context.Context, b *types.Business) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.businesses.ReplaceOne(ctx, bson.M{"id": b.ID}, b, opts)
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("upsert business: %w", err)}
	}
	return nil
}

func (s *MongoStore) InsertProducts(ctx context.Context, records []*types.ProductRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]any, len(records))
	for i, r := range records {
		docs[i] = r
	}

	// Unordered so one bad document does not sink the batch.
	opts := options.InsertMany().SetOrdered(false)
	res, err := s.products.InsertMany(ctx, docs, opts)
	written := 0
	if res != nil {
		written = len(res.InsertedIDs)
	}
	if err != nil {
		return written, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("insert products: %w", err)}
	}

	s.mu.Lock()
	s.count += written
	s.mu.Unlock()
	s.logger.Debug("products stored", "count", written, "total", s.count)
	return written, nil
}

func (s *MongoStore) ListBusinesses(ctx context.Context) ([]*types.Business, error) {
	cur, err := s.businesses.Find(ctx, bson.M{})
	if err != nil {
		return nil, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("list businesses: %w", err)}
	}
	defer cur.Close(ctx)

	var out []*types.Business
	if err := cur.All(ctx, &out); err != nil {
		return nil, &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("decode businesses: %w", err)}
	}
	return out, nil
}

func (s *MongoStore) Close() error {
	s.logger.Info("mongodb storage closing", "total_products", s.count)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
