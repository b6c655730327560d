package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"synport/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(0)
	bag.Add(diag.Warning(diag.RevNoToken, "src/P2", "Skipping directory due to error: no revision in src/P2"))
	bag.Add(diag.Error(diag.IORead, "src/P3/a.tes", "permission denied"))
	bag.Add(diag.Info(diag.SecHeaderOnly, "out/P4/b.txt", "header-only output"))
	bag.Sort()
	return bag
}

func TestPrettySkipsPathAlreadyInMessage(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, sampleBag(), PrettyOpts{PathMode: PathModeBasename, MinSeverity: diag.SevWarning})
	want := []string{
		"warning: REV1001 Skipping directory due to error: no revision in src/P2",
		"error: IO4001 a.tes: permission denied",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyColor(t *testing.T) {
	d := diag.Error(diag.IOWrite, "", "disk full")
	if plain := Line(d, PrettyOpts{}); strings.Contains(plain, "\x1b[") {
		t.Fatalf("unexpected escape codes in %q", plain)
	}
	if colored := Line(d, PrettyOpts{Color: true}); !strings.Contains(colored, "\x1b[") {
		t.Fatalf("expected escape codes in %q", colored)
	}
}

func TestJSONMax(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{PathMode: PathModeBasename, Max: 2})
	if out.Count != 2 || !out.Truncated {
		t.Fatalf("count=%d truncated=%v", out.Count, out.Truncated)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Diagnostics []struct {
			Severity string `json:"severity"`
			Code     string `json:"code"`
		} `json:"diagnostics"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Count != 3 || decoded.Diagnostics[0].Severity != "info" {
		t.Fatalf("unexpected JSON %s", buf.String())
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "synport", ToolVersion: "test", InvocationArgs: []string{"migrate"}, PathMode: PathModeBasename}
	if err := Sarif(&buf, sampleBag(), meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	var ruleIDs []string
	for _, r := range run.Tool.Driver.Rules {
		ruleIDs = append(ruleIDs, r.ID)
	}
	if diff := cmp.Diff([]string{"IO4001", "REV1001", "SEC2002"}, ruleIDs); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	levels := map[string]string{}
	for _, r := range run.Results {
		levels[r.RuleID] = r.Level
	}
	if levels["IO4001"] != "error" || levels["SEC2002"] != "note" {
		t.Fatalf("levels = %v", levels)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatal("an error diagnostic should mark the invocation unsuccessful")
	}
}
