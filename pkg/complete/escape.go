package complete

import (
	"regexp"
	"strings"
)

// namePattern matches identifiers that never need quoting.
var namePattern = regexp.MustCompile(`^[_a-z][_a-z0-9$]*$`)

// Escaper quotes identifiers that collide with reserved words or fall outside
// the plain identifier pattern. It is pure over the session's reserved set.
type Escaper struct {
	reserved map[string]struct{}
}

// NewEscaper builds an Escaper from the session's reserved words.
func NewEscaper(reserved []string) *Escaper {
	set := make(map[string]struct{}, len(reserved))
	for _, w := range reserved {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return &Escaper{reserved: set}
}

// NeedsQuoting reports whether name must be double-quoted to be used verbatim.
func (e *Escaper) NeedsQuoting(name string) bool {
	// the star pseudo-column is literal syntax, never an identifier
	if name == "" || name == "*" {
		return false
	}
	if !namePattern.MatchString(name) {
		return true
	}
	_, ok := e.reserved[strings.ToUpper(name)]
	return ok
}

// Escape wraps name in double quotes when needed, otherwise returns it
// unchanged. Embedded double quotes are not doubled.
func (e *Escaper) Escape(name string) string {
	if e.NeedsQuoting(name) {
		return `"` + name + `"`
	}
	return name
}

// EscapeAll escapes every name in the slice.
func (e *Escaper) EscapeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = e.Escape(n)
	}
	return out
}

// Unescape strips one pair of surrounding double quotes. Anything else,
// including a lone leading quote, comes back unchanged.
func Unescape(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}
