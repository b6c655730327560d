package revision

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoRevisionFound matches every *NoRevisionFoundError through errors.Is.
var ErrNoRevisionFound = errors.New("no valid revision identifiers found in filenames")

// NoRevisionFoundError reports that none of the candidates carried a token.
type NoRevisionFoundError struct {
	Dir        string
	Candidates []string
}

func (e *NoRevisionFoundError) Error() string {
	var b strings.Builder
	b.WriteString(ErrNoRevisionFound.Error())
	if e.Dir != "" {
		fmt.Fprintf(&b, " in %s", e.Dir)
	}
	if len(e.Candidates) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Candidates, ", "))
	}
	return b.String()
}

func (e *NoRevisionFoundError) Is(target error) bool {
	return target == ErrNoRevisionFound
}

// Candidate pairs a file name with its optional token.
type Candidate struct {
	Name  string
	Token Token
	OK    bool
}

// Resolver selects the newest candidate using Parser.
type Resolver struct {
	Parser Parser
}

var defaultResolver = Resolver{Parser: DatedParser{}}

// Resolve picks the newest file name using the default dated token shape.
func Resolve(names []string) (Candidate, error) {
	return defaultResolver.Resolve(names)
}

// Candidates returns every name paired with its parsed token, sorted by name.
func (r Resolver) Candidates(names []string) []Candidate {
	parser := r.Parser
	if parser == nil {
		parser = DatedParser{}
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	out := make([]Candidate, 0, len(sorted))
	for _, name := range sorted {
		tok, ok := parser.Parse(name)
		out = append(out, Candidate{Name: name, Token: tok, OK: ok})
	}
	return out
}

// Resolve returns the candidate with the greatest token. Names without a
// token are ignored. When tokens tie, the first tied name in sorted order
// wins; callers must not depend on that choice.
func (r Resolver) Resolve(names []string) (Candidate, error) {
	var (
		best  Candidate
		found bool
	)
	for _, c := range r.Candidates(names) {
		if !c.OK {
			continue
		}
		if !found || c.Token.Compare(best.Token) > 0 {
			best = c
			found = true
		}
	}
	if !found {
		return Candidate{}, &NoRevisionFoundError{Candidates: append([]string(nil), names...)}
	}
	return best, nil
}
