package pipeline

import (
	"log/slog"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Middleware processes a product record and returns the (possibly
// modified) record. Return nil to drop the record from the pipeline.
type Middleware interface {
	// Name returns the middleware's identifier.
	Name() string

	// Process transforms a record. Return nil to drop the record.
	Process(rec *types.ProductRecord) (*types.ProductRecord, error)
}

// Pipeline chains middleware processors together. Every extracted
// record passes through before it reaches the aggregator.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
}

// New creates a new Pipeline.
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With("component", "pipeline"),
	}
}

// Use adds a middleware to the pipeline chain.
func (p *Pipeline) Use(mw Middleware) {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
}

// Process runs the record through all middleware in order.
func (p *Pipeline) Process(rec *types.ProductRecord) (*types.ProductRecord, error) {
	current := rec

	for _, mw := range p.middlewares {
		result, err := mw.Process(current)
		if err != nil {
			return nil, &types.ExtractError{URL: rec.SourceURL, Err: err}
		}
		if result == nil {
			p.logger.Debug("record dropped", "stage", mw.Name(), "name", rec.Name)
			return nil, nil
		}
		current = result
	}

	return current, nil
}

// Len returns the number of middleware in the chain.
func (p *Pipeline) Len() int {
	return len(p.middlewares)
}

// Default returns the standard pipeline used by the crawler.
func Default(logger *slog.Logger) *Pipeline {
	p := New(logger)
	p.Use(NewNormalizeMiddleware())
	p.Use(&DefaultsMiddleware{})
	return p
}
