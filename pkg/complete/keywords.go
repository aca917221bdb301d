package complete

import (
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// KeywordRegistry holds the dialect keywords for one session. It is populated
// once from a KeywordSource and read-only afterwards. Multi-word keywords
// contribute each of their tokens to the reserved set used for escaping.
type KeywordRegistry struct {
	words    []string
	reserved []string
	index    *patricia.Trie
}

// NewKeywordRegistry normalizes, dedupes and indexes the keyword list.
func NewKeywordRegistry(words []string) *KeywordRegistry {
	seen := make(map[string]struct{}, len(words))
	resSet := make(map[string]struct{}, len(words))
	upper := make([]string, 0, len(words))

	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		upper = append(upper, w)
		for _, tok := range strings.Fields(w) {
			resSet[tok] = struct{}{}
		}
	}
	sort.Strings(upper)

	index := patricia.NewTrie()
	for _, w := range upper {
		index.Insert(patricia.Prefix(strings.ToLower(w)), w)
	}

	reserved := make([]string, 0, len(resSet))
	for w := range resSet {
		reserved = append(reserved, w)
	}
	sort.Strings(reserved)

	return &KeywordRegistry{words: upper, reserved: reserved, index: index}
}

// All returns every keyword, upper-cased and sorted. Callers must not mutate it.
func (r *KeywordRegistry) All() []string {
	return r.words
}

// Reserved returns the single-token reserved words, sorted.
func (r *KeywordRegistry) Reserved() []string {
	return r.reserved
}

// Len returns the number of keywords.
func (r *KeywordRegistry) Len() int {
	return len(r.words)
}

// WithPrefix returns keywords starting with prefix, case-insensitive.
func (r *KeywordRegistry) WithPrefix(prefix string) []string {
	var out []string
	_ = r.index.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		out = append(out, item.(string))
		return nil
	})
	sort.Strings(out)
	return out
}
