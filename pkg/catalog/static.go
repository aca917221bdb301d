// Package catalog provides schema object providers for the completion
// engine: a trie-backed in-memory catalog for offline use and a live
// Postgres-backed one that queries the system catalogs.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/sqlserve/pkg/complete"
)

// Static is an in-memory catalog. Objects and columns are stored in
// patricia tries so listing a schema is a single subtree walk. The
// engine sorts pools itself, so walk order does not matter here.
// Safe for concurrent use once populated.
type Static struct {
	mu       sync.RWMutex
	objects  *patricia.Trie // kind + ":" + schema + ":" + name
	columns  *patricia.Trie // schema + "." + table + ":" + column
	keywords []string
}

// NewStatic creates an empty static catalog.
func NewStatic() *Static {
	return &Static{
		objects: patricia.NewTrie(),
		columns: patricia.NewTrie(),
	}
}

// AddObject registers named objects of the given kind under a schema.
// Schemas and databases use an empty schema key.
func (s *Static) AddObject(schema string, kind complete.ObjectKind, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		key := kind.String() + ":" + schema + ":" + name
		s.objects.Set(patricia.Prefix(key), name)
	}
}

// AddColumns registers columns for a table.
func (s *Static) AddColumns(schema, table string, cols ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, col := range cols {
		key := schema + "." + table + ":" + col
		s.columns.Set(patricia.Prefix(key), col)
	}
}

// SetKeywords overrides the keyword list served by ListKeywords.
func (s *Static) SetKeywords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = append([]string(nil), words...)
}

// ListObjects returns all objects of the given kind in the schema.
func (s *Static) ListObjects(_ context.Context, schema string, kind complete.ObjectKind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	prefix := patricia.Prefix(kind.String() + ":" + schema + ":")
	s.objects.VisitSubtree(prefix, func(_ patricia.Prefix, item patricia.Item) error {
		names = append(names, item.(string))
		return nil
	})
	return names, nil
}

// ListColumns returns the columns of a table. When the table carries no
// schema, every schema is searched and the results are merged.
func (s *Static) ListColumns(_ context.Context, table complete.TableRef) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cols []string
	if table.Schema != "" {
		prefix := patricia.Prefix(table.Schema + "." + table.Name + ":")
		s.columns.VisitSubtree(prefix, func(_ patricia.Prefix, item patricia.Item) error {
			cols = append(cols, item.(string))
			return nil
		})
		return cols, nil
	}

	marker := "." + table.Name + ":"
	s.columns.Visit(func(key patricia.Prefix, item patricia.Item) error {
		if strings.Contains(string(key), marker) {
			cols = append(cols, item.(string))
		}
		return nil
	})
	return cols, nil
}

// ListKeywords returns the configured keywords, or DefaultKeywords when
// none were set.
func (s *Static) ListKeywords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	words := s.keywords
	s.mu.RUnlock()
	if len(words) > 0 {
		out := make([]string, len(words))
		copy(out, words)
		return out, nil
	}
	return DefaultKeywordSource{}.ListKeywords(ctx)
}

// NewDemo builds a small sample catalog so the interactive CLI has
// something to complete against without a database connection.
func NewDemo() *Static {
	s := NewStatic()
	s.AddObject("public", complete.ObjTables, "orders", "order_items", "customers", "products", "inventory")
	s.AddObject("public", complete.ObjViews, "order_totals", "active_customers")
	s.AddObject("public", complete.ObjFunctions, "place_order", "cancel_order", "restock")
	s.AddObject("public", complete.ObjSetFunctions, "order_history")
	s.AddObject("public", complete.ObjDatatypes, "order_status", "money_cents")
	s.AddObject("analytics", complete.ObjTables, "daily_sales", "user_events")
	s.AddObject("", complete.ObjSchemas, "public", "analytics", "pg_catalog", "information_schema")
	s.AddObject("", complete.ObjDatabases, "shop", "shop_test", "postgres")
	s.AddColumns("public", "orders", "id", "customer_id", "status", "placed_at", "total_cents")
	s.AddColumns("public", "order_items", "id", "order_id", "product_id", "quantity")
	s.AddColumns("public", "customers", "id", "name", "email", "created_at")
	s.AddColumns("public", "products", "id", "name", "price_cents", "sku")
	s.AddColumns("analytics", "daily_sales", "day", "total_cents", "order_count")
	return s
}
