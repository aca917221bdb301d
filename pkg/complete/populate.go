package complete

import (
	"context"
	"fmt"

	"github.com/bastiangx/sqlserve/internal/utils"
)

// populateObjects resolves the schema scope to either one named schema or the
// session search path, asks the catalog once per resolved schema and unions
// the results. Empty pools are fine; only catalog failures abort.
func (e *Engine) populateObjects(ctx context.Context, schema string, kind ObjectKind) ([]string, error) {
	schemas := e.searchPath
	if schema != "" {
		schemas = []string{schema}
	}

	var names []string
	for _, sc := range schemas {
		objs, err := e.catalog.ListObjects(ctx, sc, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: listing %s in %q: %w", ErrCatalogUnavailable, kind, sc, err)
		}
		names = append(names, objs...)
	}
	return utils.SortedUnique(names), nil
}
