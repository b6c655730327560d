package comments

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultWidth matches the banner width of the SYNOR 5000 header.
	DefaultWidth = 79
	// DefaultLeadRule is the slash run before the payload.
	DefaultLeadRule = 31
	// DefaultTrailRule is the fixed slash run after the payload.
	DefaultTrailRule = 27

	minTrailRule = 3
	padding      = "  "
)

// Options controls the decorated banner layout. Width is the length of the
// full rule lines.
type Options struct {
	Width     int
	LeadRule  int
	TrailRule int
	// Fill pads the payload line with slashes up to Width (at least 3)
	// instead of appending TrailRule slashes.
	Fill bool
}

// DefaultOptions returns the SYNOR 5000 banner layout.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, LeadRule: DefaultLeadRule, TrailRule: DefaultTrailRule}
}

func (o Options) normalized() Options {
	if o.LeadRule <= 0 {
		o.LeadRule = DefaultLeadRule
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.TrailRule <= 0 {
		o.TrailRule = DefaultTrailRule
	}
	return o
}

// Render builds the four-line decorated banner for payload. The payload is
// trimmed; lines are joined with eol and the block has no trailing eol.
func Render(payload, eol string, opts Options) string {
	opts = opts.normalized()
	if eol == "" {
		eol = "\n"
	}
	rule := strings.Repeat("/", opts.Width)
	head := strings.Repeat("/", opts.LeadRule) + padding + strings.TrimSpace(payload) + padding
	trail := opts.TrailRule
	if opts.Fill {
		trail = max(opts.Width-cellWidth(head), minTrailRule)
	}
	title := head + strings.Repeat("/", trail)
	return strings.Join([]string{rule, rule, title, rule}, eol)
}

// cellWidth measures display columns of s after NFC composition, so a
// decomposed "é" counts once and wide runes count twice.
func cellWidth(s string) int {
	return runewidth.StringWidth(norm.NFC.String(s))
}
