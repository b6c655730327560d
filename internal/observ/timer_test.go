package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	end := tm.Track("scan")
	end("12 dirs")
	idx := tm.Begin("migrate")
	tm.End(idx, "")
	tm.End(99, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "scan" || report.Phases[0].Note != "12 dirs" {
		t.Fatalf("unexpected first phase %+v", report.Phases[0])
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %f below phase duration", report.TotalMS)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "scan", "// 12 dirs", "migrate", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerNilTrack(t *testing.T) {
	var tm *Timer
	tm.Track("noop")("done")
}
