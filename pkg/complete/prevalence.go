package complete

import (
	"strings"
	"sync"
)

// PrevalenceCounter tracks how often keywords and object names have been used
// in a session. Counts only move when the host records an accepted completion;
// ranking reads them as tie-breakers. Counts never decay.
type PrevalenceCounter struct {
	mu       sync.RWMutex
	keywords map[string]int
	names    map[string]int
}

// NewPrevalenceCounter returns empty counters.
func NewPrevalenceCounter() *PrevalenceCounter {
	return &PrevalenceCounter{
		keywords: make(map[string]int),
		names:    make(map[string]int),
	}
}

// RecordKeyword bumps the usage count of a keyword. Case-insensitive.
func (p *PrevalenceCounter) RecordKeyword(word string) {
	p.mu.Lock()
	p.keywords[strings.ToUpper(word)]++
	p.mu.Unlock()
}

// RecordName bumps the usage count of an object name.
func (p *PrevalenceCounter) RecordName(name string) {
	p.mu.Lock()
	p.names[name]++
	p.mu.Unlock()
}

// KeywordWeight returns the recorded usage count of word, 0 if never seen.
func (p *PrevalenceCounter) KeywordWeight(word string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.keywords[strings.ToUpper(word)]
}

// NameWeight returns the recorded usage count of name, 0 if never seen.
func (p *PrevalenceCounter) NameWeight(name string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.names[name]
}
