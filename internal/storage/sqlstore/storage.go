package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/storage"
)

// Storage is a SQL-backed implementation of the document store. Every
// document is one row of JSON keyed by (collection, doc_key).
type Storage struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database and ensures the schema exists
func Open(ctx context.Context, dialect Dialect, dsn string) (*Storage, error) {
	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	if dialect.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dialect.MaxOpenConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	s := &Storage{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Ensure Storage implements the interface
var _ storage.DocumentStore = (*Storage)(nil)

func (s *Storage) migrate(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", s.dialect.Name, err)
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.schema()); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// Close closes the database handle
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) Get(ctx context.Context, collection, key string) (*model.Document, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.dialect.selectOne(), collection, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotPresent
		}
		return nil, storage.Transient("sql get "+collection+"/"+key, err)
	}

	fields, err := storage.DecodeFields(data)
	if err != nil {
		return nil, err
	}
	return &model.Document{Collection: collection, Key: key, Fields: fields}, nil
}

func (s *Storage) List(ctx context.Context, collection string) ([]*model.Document, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.selectCollection(), collection)
	if err != nil {
		return nil, storage.Transient("sql list "+collection, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := []*model.Document{}
	for rows.Next() {
		var (
			key  string
			data []byte
		)
		if err := rows.Scan(&key, &data); err != nil {
			return nil, storage.Transient("sql list "+collection, err)
		}
		fields, err := storage.DecodeFields(data)
		if err != nil {
			continue // Skip invalid data
		}
		docs = append(docs, &model.Document{Collection: collection, Key: key, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Transient("sql list "+collection, err)
	}

	// Collations differ between backends, sort by byte order here
	storage.SortByKey(docs)
	return docs, nil
}

func (s *Storage) Put(ctx context.Context, collection, key string, fields map[string]any) error {
	data, err := storage.EncodeFields(fields)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.dialect.upsert(), collection, key, string(data), time.Now().UTC())
	return err
}
