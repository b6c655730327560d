package comments

import (
	"regexp"
	"strings"

	"synport/internal/source"
)

// LegacyRuleWidth is the number of slashes inside a legacy rule line.
const LegacyRuleWidth = 51

// The opening rule may follow other text on its line; that text is kept.
var legacyBlock = regexp.MustCompile(
	`REM\{/{51}\}(\r?\n)REM\{([^\r\n]*?)\}\r?\nREM\{/{51}\}`,
)

// Match is one legacy banner found in a document.
type Match struct {
	Span source.Span
	// Payload is the raw text between the braces of the middle line.
	Payload string
	// EOL is the line terminator used inside the block.
	EOL string
}

// Find returns every legacy banner in doc, in document order. Matches never
// overlap; the closing rule must end its line.
func Find(doc string) []Match {
	var out []Match
	pos := 0
	for pos < len(doc) {
		loc := legacyBlock.FindStringSubmatchIndex(doc[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !endsLine(doc, end) {
			pos = start + 1
			continue
		}
		span, err := source.SpanOf(start, end)
		if err != nil {
			// documents past 4 GiB are not addressable by Span
			break
		}
		out = append(out, Match{
			Span:    span,
			Payload: doc[pos+loc[4] : pos+loc[5]],
			EOL:     doc[pos+loc[2] : pos+loc[3]],
		})
		pos = end
	}
	return out
}

func endsLine(doc string, end int) bool {
	return end == len(doc) || doc[end] == '\n' || strings.HasPrefix(doc[end:], "\r\n")
}

// LegacyBlock renders a legacy banner. Used by tests and fixtures.
func LegacyBlock(payload, eol string) string {
	rule := "REM{" + strings.Repeat("/", LegacyRuleWidth) + "}"
	return rule + eol + "REM{" + payload + "}" + eol + rule
}
