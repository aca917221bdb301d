package complete

import (
	"math"
	"sort"
	"strings"
)

type matchMode int

const (
	// modeStrict accepts candidates whose unescaped lower-cased form starts
	// with the input. Used for every catalog-object pool.
	modeStrict matchMode = iota
	// modeFuzzy accepts candidates containing the input as a subsequence.
	// Used for free-text pools such as keywords.
	modeFuzzy
)

// maxLabelLen caps the display label; longer labels are cut to 47 runes
// plus an ellipsis marker.
const maxLabelLen = 50

// rankKey orders matches. Fields are compared in declaration order and a
// "larger" value wins, except the final lexical tie-break which is ascending.
// The span fields are negated so that shorter spans starting earlier win, and
// strict matches carry -Inf so they always sort after fuzzy matches when the
// host mixes pools.
type rankKey struct {
	spanLen   float64
	spanStart float64
	weight    int
	lexical   string
}

// before reports whether a ranks ahead of b.
func (a rankKey) before(b rankKey) bool {
	if a.spanLen != b.spanLen {
		return a.spanLen > b.spanLen
	}
	if a.spanStart != b.spanStart {
		return a.spanStart > b.spanStart
	}
	if a.weight != b.weight {
		return a.weight > b.weight
	}
	return a.lexical < b.lexical
}

// matcher scores one candidate pool against the user's partial input.
type matcher struct {
	text   string
	mode   matchMode
	weight func(string) int
}

func newMatcher(text string, mode matchMode, weight func(string) int) matcher {
	text = strings.ToLower(text)
	// a leading double quote means the user is escaping the name by hand;
	// match on whatever follows it
	if strings.HasPrefix(text, `"`) {
		text = text[1:]
	}
	return matcher{text: text, mode: mode, weight: weight}
}

// match reports whether candidate matches and computes its ordering key.
// Matching always happens on the unescaped lower-cased form, so `Foo` and
// `"Foo"` score identically.
func (m matcher) match(candidate string) (rankKey, bool) {
	plain := Unescape(candidate)
	target := strings.ToLower(plain)

	var key rankKey
	switch m.mode {
	case modeFuzzy:
		start, length, ok := subsequenceSpan([]rune(target), []rune(m.text))
		if !ok {
			return rankKey{}, false
		}
		key.spanLen = -float64(length)
		key.spanStart = -float64(start)
	default:
		// a contiguous match confined to the first len(text) runes can only
		// sit at offset zero, so strict mode is prefix containment
		if !strings.HasPrefix(target, m.text) {
			return rankKey{}, false
		}
		key.spanLen = math.Inf(-1)
		key.spanStart = 0
	}

	key.weight = m.weight(plain)
	key.lexical = plain
	return key, true
}

// subsequenceSpan finds the leftmost embedding of pattern in s, taking the
// earliest position for every character; that embedding is also the shortest
// one available at that start. Offsets are in runes.
func subsequenceSpan(s, pattern []rune) (start, length int, ok bool) {
	if len(pattern) == 0 {
		return 0, 0, true
	}
	pos := 0
	for ; pos < len(s); pos++ {
		if s[pos] == pattern[0] {
			break
		}
	}
	if pos == len(s) {
		return 0, 0, false
	}
	start = pos
	for _, pc := range pattern[1:] {
		for pos++; pos < len(s); pos++ {
			if s[pos] == pc {
				break
			}
		}
		if pos == len(s) {
			return 0, 0, false
		}
	}
	return start, pos - start + 1, true
}

// findMatches filters and ranks a candidate pool. The pool must already be in
// a deterministic order; ties between identical keys keep that order.
func findMatches(text string, pool []string, mode matchMode, label string, weight func(string) int, span Span) []Match {
	m := newMatcher(text, mode, weight)
	label = truncateLabel(label)

	var out []Match
	for _, cand := range pool {
		key, ok := m.match(cand)
		if !ok {
			continue
		}
		out = append(out, Match{Text: cand, Label: label, Span: span, key: key})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].key.before(out[j].key)
	})
	return out
}

func truncateLabel(label string) string {
	r := []rune(label)
	if len(r) <= maxLabelLen {
		return label
	}
	return string(r[:maxLabelLen-3]) + "..."
}
