package complete

import (
	"sync"
	"testing"
)

func TestPrevalenceCounter(t *testing.T) {
	p := NewPrevalenceCounter()

	if p.KeywordWeight("SELECT") != 0 {
		t.Error("fresh counter should weigh zero")
	}

	p.RecordKeyword("select")
	p.RecordKeyword("SELECT")
	if got := p.KeywordWeight("Select"); got != 2 {
		t.Errorf("keyword weight = %d, want 2 (case folded)", got)
	}

	// names are case sensitive, identifiers are not keywords
	p.RecordName("orders")
	p.RecordName("orders")
	p.RecordName("Orders")
	if got := p.NameWeight("orders"); got != 2 {
		t.Errorf("name weight = %d, want 2", got)
	}
	if got := p.NameWeight("Orders"); got != 1 {
		t.Errorf("quoted name weight = %d, want 1", got)
	}

	// keyword and name counters do not bleed into each other
	if got := p.NameWeight("select"); got != 0 {
		t.Errorf("name counter saw a keyword record: %d", got)
	}
}

func TestPrevalenceConcurrent(t *testing.T) {
	p := NewPrevalenceCounter()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.RecordKeyword("from")
				p.KeywordWeight("from")
				p.RecordName("orders")
				p.NameWeight("orders")
			}
		}()
	}
	wg.Wait()

	if got := p.KeywordWeight("FROM"); got != 800 {
		t.Errorf("keyword weight = %d, want 800", got)
	}
	if got := p.NameWeight("orders"); got != 800 {
		t.Errorf("name weight = %d, want 800", got)
	}
}
