package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) inside a document.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// SpanOf converts int offsets into a Span, failing on negative or oversized values.
func SpanOf(start, end int) (Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{}, fmt.Errorf("span start %d: %w", start, err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return Span{}, fmt.Errorf("span end %d: %w", end, err)
	}
	if e < s {
		return Span{}, fmt.Errorf("span end %d before start %d", end, start)
	}
	return Span{Start: s, End: e}, nil
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Overlaps reports whether two non-empty spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	if s.Empty() || other.Empty() {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// Slice returns the text covered by the span, clamped to the text bounds.
func (s Span) Slice(text string) string {
	n := len(text)
	start, end := int(s.Start), int(s.End)
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return text[start:end]
}
