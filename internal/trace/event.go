package trace

import "time"

// Kind says what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindFailure is a point event carrying an error; it passes every
	// level except off.
	KindFailure
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindFailure:   "failure",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeRun  Scope = iota + 1 // whole migrate/comments run
	ScopeDir                   // one source directory
	ScopeFile                  // one file read or write
)

var scopeNames = [...]string{
	ScopeRun:  "run",
	ScopeDir:  "dir",
	ScopeFile: "file",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. SpanID and ParentID link begin/end pairs and
// nested work; ParentID is 0 for the run span.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // "migrate", "dir", "write", ...
	Detail   string
	Extra    map[string]string
}
