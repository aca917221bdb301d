package complete

import (
	"context"
	"errors"
	"testing"
)

// fakeCatalog serves fixed pools, keyed the way the engine asks for them.
type fakeCatalog struct {
	objects map[string][]string // kind.String() + ":" + schema
	columns map[string][]string // schema + "." + name, or just name
	err     error
}

func (f *fakeCatalog) ListObjects(_ context.Context, schema string, kind ObjectKind) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.objects[kind.String()+":"+schema], nil
}

func (f *fakeCatalog) ListColumns(_ context.Context, table TableRef) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := table.Name
	if table.Schema != "" {
		key = table.Schema + "." + table.Name
	}
	return f.columns[key], nil
}

type fakeKeywords []string

func (f fakeKeywords) ListKeywords(_ context.Context) ([]string, error) {
	return f, nil
}

func newTestEngine(t *testing.T, cat Catalog) *Engine {
	t.Helper()
	e, err := NewEngine(context.Background(), cat, fakeKeywords{"SELECT", "SET", "FROM", "WHERE", "ORDER BY"}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestEngineTableMatches(t *testing.T) {
	cat := &fakeCatalog{objects: map[string][]string{
		"tables:public": {"orders", "pg_internal", "Order Log", "customers"},
		"tables:audit":  {"events"},
	}}
	e := newTestEngine(t, cat)

	testCases := []struct {
		s           Suggestion
		text        string
		expected    []string
		description string
	}{
		// pg_ names stay hidden on the default search path
		{Suggestion{Kind: KindTable}, "", []string{`"Order Log"`, "customers", "orders"}, "System names hidden"},
		// unless the user types the prefix themselves
		{Suggestion{Kind: KindTable}, "pg_", []string{"pg_internal"}, "System names on request"},
		// an explicit schema disables the filter and the search path
		{Suggestion{Kind: KindTable, Schema: "audit"}, "", []string{"events"}, "Named schema"},
		// names that need quoting come back quoted but still match
		{Suggestion{Kind: KindTable}, "ord", []string{`"Order Log"`, "orders"}, "Quoted name matches"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := e.Matches(context.Background(), tc.s, tc.text, Span{})
			if err != nil {
				t.Fatalf("Matches: %v", err)
			}
			assertTexts(t, got, tc.expected)
		})
	}
}

func TestEngineSystemSuppression(t *testing.T) {
	// the canonical trio: pg_ names hide until asked for
	cat := &fakeCatalog{objects: map[string][]string{
		"tables:public": {"pg_class", "orders", "pg_user"},
	}}
	e := newTestEngine(t, cat)

	got, err := e.Matches(context.Background(), Suggestion{Kind: KindTable}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"orders"})

	got, err = e.Matches(context.Background(), Suggestion{Kind: KindTable}, "pg_", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"pg_class", "pg_user"})
}

func TestEngineColumnMatches(t *testing.T) {
	cat := &fakeCatalog{columns: map[string][]string{
		"public.orders":    {"id", "customer_id", "status", "*"},
		"public.customers": {"id", "name", "*"},
	}}
	e := newTestEngine(t, cat)

	tables := []TableRef{
		{Schema: "public", Name: "orders"},
		{Schema: "public", Name: "customers"},
	}

	got, err := e.Matches(context.Background(), Suggestion{Kind: KindColumn, Tables: tables}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	// union of both tables, deduped
	assertTexts(t, got, []string{"*", "customer_id", "id", "name", "status"})

	// JOIN ... USING wants only shared columns, star excluded
	got, err = e.Matches(context.Background(),
		Suggestion{Kind: KindColumn, Tables: tables, UniqueOnly: true}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"id"})
}

func TestEngineFunctionMatches(t *testing.T) {
	cat := &fakeCatalog{objects: map[string][]string{
		// overloads show up once per signature from a real catalog
		"functions:public":               {"place_order", "place_order", "restock"},
		"set-returning functions:public": {"order_history"},
	}}
	e := newTestEngine(t, cat)

	got, err := e.Matches(context.Background(), Suggestion{Kind: KindFunction}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	// overloads collapse to a single suggestion
	assertTexts(t, got, []string{"place_order", "restock"})

	got, err = e.Matches(context.Background(), Suggestion{Kind: KindFunction, SetReturning: true}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"order_history"})
}

func TestEngineKeywordMatches(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{})

	got, err := e.Matches(context.Background(), Suggestion{Kind: KindKeyword}, "se", Span{})
	if err != nil {
		t.Fatal(err)
	}
	// equal spans, so plain a-z ordering
	assertTexts(t, got, []string{"SELECT", "SET"})

	// recorded usage breaks span ties
	e.RecordKeywordUsage("SET")
	e.RecordKeywordUsage("SET")
	got, _ = e.Matches(context.Background(), Suggestion{Kind: KindKeyword}, "se", Span{})
	if got[0].Text != "SET" {
		t.Errorf("prevalence should rank SET first, got %v", matchTexts(got))
	}
}

func TestEngineSchemaAndAliasMatches(t *testing.T) {
	cat := &fakeCatalog{objects: map[string][]string{
		"schemas:":   {"public", "audit", "pg_catalog"},
		"databases:": {"shop", "postgres"},
	}}
	e := newTestEngine(t, cat)

	got, err := e.Matches(context.Background(), Suggestion{Kind: KindSchema}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"audit", "public"})

	got, err = e.Matches(context.Background(), Suggestion{Kind: KindDatabase}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"postgres", "shop"})

	got, err = e.Matches(context.Background(),
		Suggestion{Kind: KindAlias, Aliases: []string{"o", "c", "o"}}, "", Span{})
	if err != nil {
		t.Fatal(err)
	}
	assertTexts(t, got, []string{"c", "o"})
}

func TestEngineErrors(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{err: errors.New("connection reset")})

	_, err := e.Matches(context.Background(), Suggestion{Kind: KindTable}, "", Span{})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("want ErrCatalogUnavailable, got %v", err)
	}

	_, err = e.Matches(context.Background(), Suggestion{Kind: Kind(99)}, "", Span{})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("want ErrUnsupportedKind, got %v", err)
	}

	// keywords never touch the catalog, so they keep working
	if _, err := e.Matches(context.Background(), Suggestion{Kind: KindKeyword}, "se", Span{}); err != nil {
		t.Errorf("keyword matches should not need the catalog: %v", err)
	}
}

func TestEngineSpanEcho(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{})

	span := Span{Start: 7, End: 10}
	got, err := e.Matches(context.Background(), Suggestion{Kind: KindKeyword}, "from", span)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range got {
		if m.Span != span {
			t.Errorf("match %q carries span %+v, want %+v", m.Text, m.Span, span)
		}
	}
}

func assertTexts(t *testing.T, got []Match, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", matchTexts(got), want)
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("match %d = %q, want %q", i, got[i].Text, want[i])
		}
	}
}
