package diag

import "strings"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for notable but expected outcomes (header-only output, rewrites).
	SevInfo Severity = iota
	// SevWarning marks an item that was skipped.
	SevWarning
	// SevError marks an item that failed.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// MarshalText renders the severity in lower case for JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}
