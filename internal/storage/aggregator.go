package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Aggregator dedupes a crawl's records and persists them in batches.
type Aggregator struct {
	store     Store
	batchSize int
	logger    *slog.Logger
}

func NewAggregator(store Store, batchSize int, logger *slog.Logger) *Aggregator {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Aggregator{
		store:     store,
		batchSize: batchSize,
		logger:    logger.With("component", "aggregator"),
	}
}

// Dedupe drops records whose key was already seen, keeping the first
// occurrence. Order is otherwise preserved.
func Dedupe(records []*types.ProductRecord) []*types.ProductRecord {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := r.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Persist upserts the business, then writes its deduped records in
// fixed-size batches. A failed batch is logged and skipped; Persist
// returns how many records were written and the first batch error.
// A crawl with no records writes nothing at all: the business row and
// its products are one logical unit, and a business without products
// must never reach storage.
func (a *Aggregator) Persist(ctx context.Context, business *types.Business, records []*types.ProductRecord) (int, error) {
	records = Dedupe(records)
	if len(records) == 0 {
		a.logger.Info("nothing to persist", "business", business.Name)
		return 0, nil
	}

	if business.ID == "" {
		business.ID = uuid.NewString()
	}
	if business.CreatedAt.IsZero() {
		business.CreatedAt = time.Now().UTC()
	}
	if err := a.store.InsertBusiness(ctx, business); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for _, r := range records {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.BusinessID = business.ID
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
	}

	written := 0
	var firstErr error
	for start := 0; start < len(records); start += a.batchSize {
		end := start + a.batchSize
		if end > len(records) {
			end = len(records)
		}
		n, err := a.store.InsertProducts(ctx, records[start:end])
		written += n
		if err != nil {
			a.logger.Error("batch insert failed",
				"business_id", business.ID, "batch_start", start, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	a.logger.Info("crawl persisted",
		"business_id", business.ID,
		"business", business.Name,
		"unique_products", len(records),
		"written", written)
	return written, firstErr
}
