package comments

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"synport/internal/source"
)

var (
	// ErrEditConflict is returned when two planned edits overlap.
	ErrEditConflict = errors.New("overlapping edits")
	// ErrStaleEdit is returned when the text under an edit changed.
	ErrStaleEdit = errors.New("existing text does not match expected content")
)

// Edit replaces OldText at Span with NewText.
type Edit struct {
	Span    source.Span
	OldText string
	NewText string
}

// Plan turns every legacy banner of doc into an Edit.
func Plan(doc string, opts Options) []Edit {
	matches := Find(doc)
	edits := make([]Edit, 0, len(matches))
	for _, m := range matches {
		edits = append(edits, Edit{
			Span:    m.Span,
			OldText: m.Span.Slice(doc),
			NewText: Render(m.Payload, m.EOL, opts),
		})
	}
	return edits
}

// Apply performs all edits in a single pass over doc. Edits are applied by
// position, never by searching for their text, so a payload that repeats
// banner text elsewhere cannot be hit twice.
func Apply(doc string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return doc, nil
	}
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	var b strings.Builder
	b.Grow(len(doc))
	cursor := 0
	for i, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if start < cursor || end > len(doc) {
			return "", fmt.Errorf("edit %d at %s: %w", i, e.Span, ErrEditConflict)
		}
		if e.OldText != "" && doc[start:end] != e.OldText {
			return "", fmt.Errorf("edit %d at %s: %w", i, e.Span, ErrStaleEdit)
		}
		b.WriteString(doc[cursor:start])
		b.WriteString(e.NewText)
		cursor = end
	}
	b.WriteString(doc[cursor:])
	return b.String(), nil
}

// Rewrite replaces every legacy banner in doc using the default layout.
// A document without banners is returned unchanged.
func Rewrite(doc string) string {
	out, _ := RewriteWith(doc, DefaultOptions())
	return out
}

// RewriteWith is Rewrite with explicit options; it also reports how many
// banners were replaced.
func RewriteWith(doc string, opts Options) (string, int) {
	edits := Plan(doc, opts)
	out, err := Apply(doc, edits)
	if err != nil {
		// Plan only emits ordered, non-overlapping edits taken from doc.
		panic(err)
	}
	return out, len(edits)
}
