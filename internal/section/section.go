// Package section splits a legacy program into the discarded preamble and
// the preserved test body.
package section

import "strings"

// Marker starts the test body of a SYNOR 1200 program.
const Marker = "TARE :"

// Document is a program split at its first marker line.
type Document struct {
	Preamble []string
	Body     []string
	// Found is false when no line contains the marker; Body is then empty
	// and Preamble holds every line.
	Found bool
	// MarkerLine is the 0-based index of the first marker line, -1 if absent.
	MarkerLine int
}

// SplitLines breaks text into lines keeping each terminator verbatim.
// The last line has no terminator when text does not end with one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.SplitAfter(text, "\n")[:countLines(text)]
}

func countLines(text string) int {
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// Split locates the first line containing marker. Everything from that line
// onward is kept regardless of later marker occurrences.
func Split(lines []string, marker string) Document {
	for i, line := range lines {
		if strings.Contains(line, marker) {
			return Document{
				Preamble:   lines[:i:i],
				Body:       lines[i:],
				Found:      true,
				MarkerLine: i,
			}
		}
	}
	return Document{Preamble: lines, MarkerLine: -1}
}

// Extract returns the lines from the first marker line onward, or an empty
// slice when the marker never appears.
func Extract(lines []string, marker string) []string {
	doc := Split(lines, marker)
	if !doc.Found {
		return []string{}
	}
	return doc.Body
}

// Text joins the body back into a single string.
func (d Document) Text() string {
	return strings.Join(d.Body, "")
}
