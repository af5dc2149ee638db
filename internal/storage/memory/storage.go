package memory

import (
	"context"
	"sync"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/storage"
)

// Storage is an in-memory implementation of the document store
type Storage struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		collections: make(map[string]map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.DocumentStore = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, collection, key string) (*model.Document, error) {
	s.mu.RLock()
	data, ok := s.collections[collection][key]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrNotPresent
	}

	fields, err := storage.DecodeFields(data)
	if err != nil {
		return nil, err
	}
	return &model.Document{Collection: collection, Key: key, Fields: fields}, nil
}

func (s *Storage) List(ctx context.Context, collection string) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*model.Document, 0, len(s.collections[collection]))
	for key, data := range s.collections[collection] {
		fields, err := storage.DecodeFields(data)
		if err != nil {
			continue // Skip invalid data
		}
		docs = append(docs, &model.Document{Collection: collection, Key: key, Fields: fields})
	}
	storage.SortByKey(docs)
	return docs, nil
}

func (s *Storage) Put(ctx context.Context, collection, key string, fields map[string]any) error {
	// Stored encoded so later mutation of fields by the caller has no effect
	data, err := storage.EncodeFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.collections[collection] = docs
	}
	docs[key] = data
	return nil
}

// Close is a no-op for memory storage
func (s *Storage) Close() error {
	return nil
}
