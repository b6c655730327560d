package diag

import (
	"sort"
	"sync"
)

// Bag collects diagnostics from concurrent workers.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends a diagnostic. Returns false once the limit is reached.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors returns true if at least one diagnostic is SevError or worse.
func (b *Bag) HasErrors() bool {
	return b.Count(SevError) > 0
}

// HasWarnings returns true if at least one diagnostic is SevWarning or worse.
func (b *Bag) HasWarnings() bool {
	return b.Count(SevWarning) > 0
}

// Count returns the number of diagnostics at sev or above.
func (b *Bag) Count(sev Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns a copy of the collected diagnostics.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Diagnostic(nil), b.items...)
}

// Sort orders diagnostics by path, severity (desc), then code, so output is
// stable no matter which worker finished first.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
