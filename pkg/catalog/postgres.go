package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bastiangx/sqlserve/pkg/complete"
)

const (
	queryTables = `SELECT c.relname
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1 AND c.relkind IN ('r', 'p', 'f')
ORDER BY 1`

	queryViews = `SELECT c.relname
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1 AND c.relkind IN ('v', 'm')
ORDER BY 1`

	queryFunctions = `SELECT p.proname
FROM pg_catalog.pg_proc p
JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname = $1
ORDER BY 1`

	querySetFunctions = `SELECT p.proname
FROM pg_catalog.pg_proc p
JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname = $1 AND p.proretset
ORDER BY 1`

	queryDatatypes = `SELECT t.typname
FROM pg_catalog.pg_type t
JOIN pg_catalog.pg_namespace n ON n.oid = t.typnamespace
WHERE n.nspname = $1 AND t.typtype IN ('b', 'c', 'd', 'e', 'r')
ORDER BY 1`

	querySchemas = `SELECT nspname FROM pg_catalog.pg_namespace ORDER BY 1`

	queryDatabases = `SELECT datname FROM pg_catalog.pg_database WHERE datallowconn ORDER BY 1`

	queryColumns = `SELECT column_name
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`

	queryColumnsAnySchema = `SELECT column_name
FROM information_schema.columns
WHERE table_name = $1
ORDER BY table_schema, ordinal_position`

	queryKeywords = `SELECT upper(word) FROM pg_get_keywords()`

	querySearchPath = `SELECT unnest(current_schemas(false))`
)

// Postgres serves catalog objects from a live connection. Results are
// cached per key until Invalidate, since catalog contents change rarely
// compared to how often completions are requested.
type Postgres struct {
	db *sql.DB

	mu     sync.RWMutex
	cache  map[string][]string
	hits   int
	misses int
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Postgres {
	return &Postgres{db: db, cache: make(map[string][]string)}
}

// Open connects to the given DSN with the pgx stdlib driver and verifies
// the connection before returning.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return New(db), nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) cached(key string) ([]string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names, ok := p.cache[key]
	return names, ok
}

func (p *Postgres) store(key string, names []string) {
	p.mu.Lock()
	p.cache[key] = names
	p.mu.Unlock()
}

func (p *Postgres) queryNames(ctx context.Context, key, query string, args ...any) ([]string, error) {
	if names, ok := p.cached(key); ok {
		p.mu.Lock()
		p.hits++
		p.mu.Unlock()
		return names, nil
	}
	p.mu.Lock()
	p.misses++
	p.mu.Unlock()

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	p.store(key, names)
	return names, nil
}

// ListObjects returns the objects of the given kind in a schema.
func (p *Postgres) ListObjects(ctx context.Context, schema string, kind complete.ObjectKind) ([]string, error) {
	key := "objects:" + kind.String() + ":" + schema
	switch kind {
	case complete.ObjTables:
		return p.queryNames(ctx, key, queryTables, schema)
	case complete.ObjViews:
		return p.queryNames(ctx, key, queryViews, schema)
	case complete.ObjFunctions:
		return p.queryNames(ctx, key, queryFunctions, schema)
	case complete.ObjSetFunctions:
		return p.queryNames(ctx, key, querySetFunctions, schema)
	case complete.ObjDatatypes:
		return p.queryNames(ctx, key, queryDatatypes, schema)
	case complete.ObjSchemas:
		return p.queryNames(ctx, key, querySchemas)
	case complete.ObjDatabases:
		return p.queryNames(ctx, key, queryDatabases)
	}
	return nil, fmt.Errorf("unknown object kind %d", kind)
}

// ListColumns returns the columns of a table in definition order. A table
// without a schema is looked up across all schemas.
func (p *Postgres) ListColumns(ctx context.Context, table complete.TableRef) ([]string, error) {
	if table.Schema != "" {
		key := "columns:" + table.Schema + "." + table.Name
		return p.queryNames(ctx, key, queryColumns, table.Schema, table.Name)
	}
	key := "columns:" + table.Name
	return p.queryNames(ctx, key, queryColumnsAnySchema, table.Name)
}

// ListKeywords asks the server for its keyword list via pg_get_keywords().
func (p *Postgres) ListKeywords(ctx context.Context) ([]string, error) {
	return p.queryNames(ctx, "keywords", queryKeywords)
}

// SearchPath returns the schemas on the session search path, implicit
// ones excluded.
func (p *Postgres) SearchPath(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, querySearchPath)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var schema string
		if err := rows.Scan(&schema); err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, rows.Err()
}

// Invalidate drops all cached results, forcing the next lookups to hit
// the database again.
func (p *Postgres) Invalidate() {
	p.mu.Lock()
	p.cache = make(map[string][]string)
	p.mu.Unlock()
}

// Stats reports cache entry count and hit/miss totals.
func (p *Postgres) Stats() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return map[string]int{
		"entries": len(p.cache),
		"hits":    p.hits,
		"misses":  p.misses,
	}
}
