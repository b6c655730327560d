package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelError              // failure points only
	LevelRun                // run + pass boundaries
	LevelDir                // per-directory events
	LevelDebug              // everything including per-file events
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelRun:
		return "run"
	case LevelDir:
		return "dir"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "run":
		return LevelRun, nil
	case "dir":
		return LevelDir, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|run|dir|debug)", s)
	}
}

// ShouldEmit reports whether an event of the given kind and scope passes
// this level. Failure points pass every level except off.
func (l Level) ShouldEmit(kind Kind, scope Scope) bool {
	if l == LevelOff {
		return false
	}
	if kind == KindFailure {
		return true
	}
	switch l {
	case LevelRun:
		return scope <= ScopeRun
	case LevelDir:
		return scope <= ScopeDir
	case LevelDebug:
		return true
	}
	return false
}
