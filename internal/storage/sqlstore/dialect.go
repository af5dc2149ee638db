package sqlstore

import (
	"fmt"
	"strings"

	// Drivers register themselves with database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between supported SQL backends
type Dialect struct {
	Name       string
	DriverName string
	// MaxOpenConns caps the pool; sqlite in-memory databases are per-connection
	MaxOpenConns int
	dataType     string
	bindVar      func(n int) string
}

// SQLite uses modernc.org/sqlite (pure Go, no cgo)
var SQLite = Dialect{
	Name:         "sqlite",
	DriverName:   "sqlite",
	MaxOpenConns: 1,
	dataType:     "TEXT",
	bindVar:      func(int) string { return "?" },
}

// Postgres uses pgx through its database/sql adapter
var Postgres = Dialect{
	Name:         "postgres",
	DriverName:   "pgx",
	MaxOpenConns: 10,
	dataType:     "JSONB",
	bindVar:      func(n int) string { return fmt.Sprintf("$%d", n) },
}

// DialectByName returns the dialect for "sqlite" or "postgres"
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case SQLite.Name:
		return SQLite, nil
	case Postgres.Name, "postgresql":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unknown sql dialect %q", name)
	}
}

func (d Dialect) schema() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		doc_key TEXT NOT NULL,
		data %s NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (collection, doc_key)
	)`, d.dataType)
}

func (d Dialect) selectOne() string {
	return fmt.Sprintf("SELECT data FROM documents WHERE collection = %s AND doc_key = %s", d.bindVar(1), d.bindVar(2))
}

func (d Dialect) selectCollection() string {
	return fmt.Sprintf("SELECT doc_key, data FROM documents WHERE collection = %s", d.bindVar(1))
}

func (d Dialect) upsert() string {
	return fmt.Sprintf(`INSERT INTO documents (collection, doc_key, data, updated_at) VALUES (%s, %s, %s, %s)
		ON CONFLICT (collection, doc_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		d.bindVar(1), d.bindVar(2), d.bindVar(3), d.bindVar(4))
}
