package storage

import (
	"context"

	"github.com/Biskuitttt/Suratt/internal/model"
)

// DocumentStore defines the narrow key-value document contract the
// resolver depends on
type DocumentStore interface {
	// Get returns the document at key, or model.ErrNotPresent
	Get(ctx context.Context, collection, key string) (*model.Document, error)

	// List returns every document in a collection, sorted by key
	List(ctx context.Context, collection string) ([]*model.Document, error)

	// Put creates or replaces the document at key
	Put(ctx context.Context, collection, key string, fields map[string]any) error

	// Close releases backend connections
	Close() error
}
