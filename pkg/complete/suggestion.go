// Package complete is the core, ranking candidate completions for a position
// in a SQL statement once the host has decided what kind of object belongs there.
package complete

// Kind is the category of object expected at the cursor. The host's context
// analysis decides the kind; this package only populates and ranks candidates.
type Kind int

const (
	KindKeyword Kind = iota
	KindTable
	KindView
	KindColumn
	KindFunction
	KindSchema
	KindDatatype
	KindAlias
	KindDatabase
)

// String returns the wire/display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindColumn:
		return "column"
	case KindFunction:
		return "function"
	case KindSchema:
		return "schema"
	case KindDatatype:
		return "datatype"
	case KindAlias:
		return "alias"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// ParseKind maps a wire/display name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "keyword":
		return KindKeyword, true
	case "table":
		return KindTable, true
	case "view":
		return KindView, true
	case "column":
		return KindColumn, true
	case "function":
		return KindFunction, true
	case "schema":
		return KindSchema, true
	case "datatype":
		return KindDatatype, true
	case "alias", "table alias":
		return KindAlias, true
	case "database":
		return KindDatabase, true
	}
	return 0, false
}

// TableRef identifies one table in scope for column suggestions.
type TableRef struct {
	Schema string
	Name   string
	Alias  string
}

// Suggestion describes what is expected at the cursor. Only the fields
// relevant to the Kind are consulted; everything else is ignored.
type Suggestion struct {
	Kind Kind

	// Schema narrows Table, View, Function and Datatype pools to one schema.
	// Empty means the configured search path.
	Schema string

	// Tables scopes Column suggestions.
	Tables []TableRef

	// UniqueOnly keeps only column names appearing in more than one scoped
	// table, for JOIN ... USING positions.
	UniqueOnly bool

	// SetReturning restricts Function pools to set-returning functions.
	SetReturning bool

	// Aliases is the candidate pool for Alias suggestions.
	Aliases []string
}

// Span is the half-open rune range of the partial word the completion replaces.
type Span struct {
	Start int
	End   int
}

// Match is one ranked completion. Matches are returned best-first.
type Match struct {
	// Text is the literal replacement for the span.
	Text string
	// Label is a short description of the candidate, eg "table".
	Label string
	// Span is the range to replace, echoed from the request.
	Span Span

	key rankKey
}
