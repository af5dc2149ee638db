package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/storage"
)

// Storage is a Redis-backed implementation of the document store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.DocumentStore = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, collection, key string) (*model.Document, error) {
	data, err := s.client.Get(ctx, documentKey(collection, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotPresent
		}
		return nil, storage.Transient("redis get "+collection+"/"+key, err)
	}

	fields, err := storage.DecodeFields(data)
	if err != nil {
		return nil, err
	}
	return &model.Document{Collection: collection, Key: key, Fields: fields}, nil
}

func (s *Storage) List(ctx context.Context, collection string) ([]*model.Document, error) {
	// Get all document keys from the index
	keys, err := s.client.SMembers(ctx, collectionIndexKey(collection)).Result()
	if err != nil {
		return nil, storage.Transient("redis list "+collection, err)
	}

	if len(keys) == 0 {
		return []*model.Document{}, nil
	}

	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = documentKey(collection, k)
	}

	values, err := s.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, storage.Transient("redis list "+collection, err)
	}

	docs := make([]*model.Document, 0, len(values))
	for i, val := range values {
		if val == nil {
			continue // Document may have expired
		}
		raw, ok := val.(string)
		if !ok {
			continue
		}
		fields, err := storage.DecodeFields([]byte(raw))
		if err != nil {
			continue // Skip invalid data
		}
		docs = append(docs, &model.Document{Collection: collection, Key: keys[i], Fields: fields})
	}

	storage.SortByKey(docs)
	return docs, nil
}

func (s *Storage) Put(ctx context.Context, collection, key string, fields map[string]any) error {
	data, err := storage.EncodeFields(fields)
	if err != nil {
		return err
	}

	indexKey := collectionIndexKey(collection)

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, documentKey(collection, key), data, s.cfg.DocumentTTL)
	pipe.SAdd(ctx, indexKey, key)
	if s.cfg.DocumentTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.DocumentTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}
