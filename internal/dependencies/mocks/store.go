package mocks

import (
	"context"
	"sync"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/storage"
)

// FlakyStore wraps a document store and injects failures per collection
type FlakyStore struct {
	storage.DocumentStore

	mu       sync.Mutex
	failures map[string]error
	gets     []string
}

// Ensure FlakyStore implements DocumentStore
var _ storage.DocumentStore = (*FlakyStore)(nil)

// NewFlakyStore wraps inner with no failures configured
func NewFlakyStore(inner storage.DocumentStore) *FlakyStore {
	return &FlakyStore{DocumentStore: inner, failures: make(map[string]error)}
}

// Fail makes every read of collection return err
func (f *FlakyStore) Fail(collection string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[collection] = err
}

// Heal clears all injected failures
func (f *FlakyStore) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]error)
}

// Gets returns the "<collection>/<key>" pairs read so far
func (f *FlakyStore) Gets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.gets...)
}

func (f *FlakyStore) Get(ctx context.Context, collection, key string) (*model.Document, error) {
	f.mu.Lock()
	f.gets = append(f.gets, collection+"/"+key)
	err := f.failures[collection]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.DocumentStore.Get(ctx, collection, key)
}

func (f *FlakyStore) List(ctx context.Context, collection string) ([]*model.Document, error) {
	f.mu.Lock()
	err := f.failures[collection]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.DocumentStore.List(ctx, collection)
}
