package mocks

import (
	"context"
	"sync"

	"github.com/Biskuitttt/Suratt/internal/blobstore"
)

// BlobResolver is a mock blob store that maps storage paths to fixed URLs
type BlobResolver struct {
	mu    sync.Mutex
	URLs  map[string]string
	Err   error
	Calls []string
}

// Ensure BlobResolver implements Resolver
var _ blobstore.Resolver = (*BlobResolver)(nil)

// NewBlobResolver creates a BlobResolver with no known paths
func NewBlobResolver() *BlobResolver {
	return &BlobResolver{URLs: make(map[string]string)}
}

// Set registers the URL returned for a storage path
func (b *BlobResolver) Set(storagePath, url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.URLs[storagePath] = url
}

// ResolveDownloadURL returns the registered URL, Err, or "mock://" + path
func (b *BlobResolver) ResolveDownloadURL(ctx context.Context, storagePath string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, storagePath)
	if b.Err != nil {
		return "", b.Err
	}
	if url, ok := b.URLs[storagePath]; ok {
		return url, nil
	}
	return "mock://" + storagePath, nil
}
