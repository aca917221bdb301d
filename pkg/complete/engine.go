package complete

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/sqlserve/internal/utils"
)

// ObjectKind selects which catalog pool to enumerate.
type ObjectKind int

const (
	ObjTables ObjectKind = iota
	ObjViews
	ObjFunctions
	ObjSetFunctions
	ObjDatatypes
	ObjSchemas
	ObjDatabases
)

// String returns the pool name, eg "tables".
func (k ObjectKind) String() string {
	switch k {
	case ObjTables:
		return "tables"
	case ObjViews:
		return "views"
	case ObjFunctions:
		return "functions"
	case ObjSetFunctions:
		return "set-returning functions"
	case ObjDatatypes:
		return "datatypes"
	case ObjSchemas:
		return "schemas"
	case ObjDatabases:
		return "databases"
	default:
		return "unknown"
	}
}

// Catalog enumerates object names visible to the session's connection.
// Implementations may return empty sets freely; that is not an error.
type Catalog interface {
	ListObjects(ctx context.Context, schema string, kind ObjectKind) ([]string, error)
	ListColumns(ctx context.Context, table TableRef) ([]string, error)
}

// KeywordSource lists the reserved words of the target dialect. Called once
// when a session initializes its keyword registry.
type KeywordSource interface {
	ListKeywords(ctx context.Context) ([]string, error)
}

var (
	// ErrUnsupportedKind reports a Suggestion tag outside the known set.
	// This is a programming error in the host, not a recoverable condition.
	ErrUnsupportedKind = errors.New("unsupported suggestion kind")

	// ErrCatalogUnavailable wraps catalog failures. A ranking call that hits
	// it returns no results at all, never a silently truncated list.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// systemPrefix marks catalog-internal schemas and relations that stay hidden
// until the user types the prefix themselves.
const systemPrefix = "pg_"

type handler func(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error)

// Engine ranks completion candidates for one session. It owns the session's
// keyword registry, reserved-word escaping and prevalence counters; the
// candidate pools come from the Catalog on every call.
type Engine struct {
	catalog    Catalog
	keywords   *KeywordRegistry
	escaper    *Escaper
	prevalence *PrevalenceCounter
	searchPath []string
	handlers   map[Kind]handler
}

// NewEngine initializes a session: keywords are fetched once from source and
// fixed for the engine's lifetime. An empty searchPath defaults to "public".
func NewEngine(ctx context.Context, cat Catalog, source KeywordSource, searchPath []string) (*Engine, error) {
	words, err := source.ListKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing keywords: %w", ErrCatalogUnavailable, err)
	}
	if len(searchPath) == 0 {
		searchPath = []string{"public"}
	}

	reg := NewKeywordRegistry(words)
	e := &Engine{
		catalog:    cat,
		keywords:   reg,
		escaper:    NewEscaper(reg.Reserved()),
		prevalence: NewPrevalenceCounter(),
		searchPath: searchPath,
	}
	e.handlers = map[Kind]handler{
		KindKeyword:  e.keywordMatches,
		KindTable:    e.tableMatches,
		KindView:     e.viewMatches,
		KindColumn:   e.columnMatches,
		KindFunction: e.functionMatches,
		KindSchema:   e.schemaMatches,
		KindDatatype: e.datatypeMatches,
		KindAlias:    e.aliasMatches,
		KindDatabase: e.databaseMatches,
	}
	return e, nil
}

// Matches populates the candidate pool for s and ranks it against text.
// span is echoed into every returned Match.
func (e *Engine) Matches(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	h, ok := e.handlers[s.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(s.Kind))
	}
	return h(ctx, s, text, span)
}

// Keywords exposes the session's keyword registry.
func (e *Engine) Keywords() *KeywordRegistry {
	return e.keywords
}

// Escaper exposes the session's identifier escaper.
func (e *Engine) Escaper() *Escaper {
	return e.escaper
}

// Provider exposes the backing catalog.
func (e *Engine) Provider() Catalog {
	return e.catalog
}

// RecordKeywordUsage feeds an accepted keyword back into the ranking weights.
func (e *Engine) RecordKeywordUsage(word string) {
	e.prevalence.RecordKeyword(word)
}

// RecordNameUsage feeds an accepted object name back into the ranking weights.
func (e *Engine) RecordNameUsage(name string) {
	e.prevalence.RecordName(name)
}

func (e *Engine) keywordMatches(_ context.Context, _ Suggestion, text string, span Span) ([]Match, error) {
	return findMatches(text, e.keywords.All(), modeFuzzy, "keyword", e.prevalence.KeywordWeight, span), nil
}

func (e *Engine) tableMatches(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	return e.objectMatches(ctx, s, text, span, ObjTables, "table")
}

func (e *Engine) viewMatches(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	return e.objectMatches(ctx, s, text, span, ObjViews, "view")
}

func (e *Engine) datatypeMatches(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	return e.objectMatches(ctx, s, text, span, ObjDatatypes, "datatype")
}

// objectMatches is the shared path for schema-scoped object pools that hide
// system names unless the user asked for them.
func (e *Engine) objectMatches(ctx context.Context, s Suggestion, text string, span Span, kind ObjectKind, label string) ([]Match, error) {
	names, err := e.populateObjects(ctx, s.Schema, kind)
	if err != nil {
		return nil, err
	}
	if s.Schema == "" {
		names = hideSystemNames(names, text)
	}
	return findMatches(text, e.escaper.EscapeAll(names), modeStrict, label, e.prevalence.NameWeight, span), nil
}

func (e *Engine) functionMatches(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	kind := ObjFunctions
	if s.SetReturning {
		kind = ObjSetFunctions
	}
	// populateObjects dedupes, which collapses overloads to one name
	names, err := e.populateObjects(ctx, s.Schema, kind)
	if err != nil {
		return nil, err
	}
	return findMatches(text, e.escaper.EscapeAll(names), modeStrict, "function", e.prevalence.NameWeight, span), nil
}

func (e *Engine) columnMatches(ctx context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	var cols []string
	for _, t := range s.Tables {
		cc, err := e.catalog.ListColumns(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("%w: listing columns of %q: %w", ErrCatalogUnavailable, t.Name, err)
		}
		cols = append(cols, cc...)
	}

	if s.UniqueOnly {
		// JOIN ... USING wants only the columns shared by several tables
		counts := make(map[string]int, len(cols))
		for _, c := range cols {
			counts[c]++
		}
		cols = cols[:0]
		for c, n := range counts {
			if n > 1 && c != "*" {
				cols = append(cols, c)
			}
		}
	}

	cols = utils.SortedUnique(cols)
	return findMatches(text, e.escaper.EscapeAll(cols), modeStrict, "column", e.prevalence.NameWeight, span), nil
}

func (e *Engine) schemaMatches(ctx context.Context, _ Suggestion, text string, span Span) ([]Match, error) {
	names, err := e.catalog.ListObjects(ctx, "", ObjSchemas)
	if err != nil {
		return nil, fmt.Errorf("%w: listing schemas: %w", ErrCatalogUnavailable, err)
	}
	names = hideSystemNames(utils.SortedUnique(names), text)
	return findMatches(text, e.escaper.EscapeAll(names), modeStrict, "schema", e.prevalence.NameWeight, span), nil
}

func (e *Engine) databaseMatches(ctx context.Context, _ Suggestion, text string, span Span) ([]Match, error) {
	names, err := e.catalog.ListObjects(ctx, "", ObjDatabases)
	if err != nil {
		return nil, fmt.Errorf("%w: listing databases: %w", ErrCatalogUnavailable, err)
	}
	names = utils.SortedUnique(names)
	return findMatches(text, e.escaper.EscapeAll(names), modeStrict, "database", e.prevalence.NameWeight, span), nil
}

func (e *Engine) aliasMatches(_ context.Context, s Suggestion, text string, span Span) ([]Match, error) {
	names := utils.SortedUnique(s.Aliases)
	return findMatches(text, e.escaper.EscapeAll(names), modeStrict, "table alias", e.prevalence.NameWeight, span), nil
}

// hideSystemNames drops pg_-prefixed names unless the user's partial input
// already starts with the prefix.
func hideSystemNames(names []string, text string) []string {
	if strings.HasPrefix(strings.ToLower(text), systemPrefix) {
		return names
	}
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if !strings.HasPrefix(n, systemPrefix) {
			kept = append(kept, n)
		}
	}
	return kept
}
