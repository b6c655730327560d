package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestCurrent(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	info := Current()
	if info.Version != Version || info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("Current() = %+v", info)
	}
}
