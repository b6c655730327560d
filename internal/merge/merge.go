// Package merge composes a migrated program from a header and a test body.
package merge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHeaderHasMarker rejects headers that would be mistaken for a test body.
var ErrHeaderHasMarker = errors.New("header contains the section marker")

// Merge returns header followed by every section line in order. No separator
// is inserted: lines keep their own terminators.
func Merge(header string, section []string) string {
	size := len(header)
	for _, line := range section {
		size += len(line)
	}
	var b strings.Builder
	b.Grow(size)
	b.WriteString(header)
	for _, line := range section {
		b.WriteString(line)
	}
	return b.String()
}

// CheckHeader verifies that header can be merged without breaking a later
// re-extraction with marker.
func CheckHeader(header, marker string) error {
	if marker != "" && strings.Contains(header, marker) {
		return fmt.Errorf("%w %q", ErrHeaderHasMarker, marker)
	}
	return nil
}

// WithLineEnding converts the header's \n terminators to eol so a CRLF body
// does not end up with mixed line endings.
func WithLineEnding(header, eol string) string {
	if eol == "\n" || eol == "" {
		return header
	}
	return strings.ReplaceAll(strings.ReplaceAll(header, "\r\n", "\n"), "\n", eol)
}
