package revision

import "strings"

// Token is a parsed revision identifier. Tokens compare as opaque strings:
// for the fixed-width default shape this is chronological order.
type Token struct {
	raw string
}

// NewToken wraps raw token text.
func NewToken(raw string) Token {
	return Token{raw: raw}
}

func (t Token) String() string {
	return t.raw
}

// IsZero reports whether t was never parsed.
func (t Token) IsZero() bool {
	return t.raw == ""
}

// Compare returns -1, 0 or +1 comparing t with other left to right.
func (t Token) Compare(other Token) int {
	return strings.Compare(t.raw, other.raw)
}

// Parser extracts a token from a file name.
type Parser interface {
	Parse(name string) (Token, bool)
}

// DatedParser finds the leftmost run of 8 ASCII digits directly followed by
// 2 uppercase ASCII letters.
type DatedParser struct{}

const (
	datedDigits  = 8
	datedLetters = 2
)

// Parse implements Parser.
func (DatedParser) Parse(name string) (Token, bool) {
	width := datedDigits + datedLetters
	for start := 0; start+width <= len(name); start++ {
		if matchDated(name[start : start+width]) {
			return Token{raw: name[start : start+width]}, true
		}
	}
	return Token{}, false
}

func matchDated(s string) bool {
	for i := 0; i < datedDigits; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	for i := datedDigits; i < datedDigits+datedLetters; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
