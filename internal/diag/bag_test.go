package diag

import (
	"sync"
	"testing"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Info(SecInfo, "a", "one")) || !b.Add(Info(SecInfo, "b", "two")) {
		t.Fatal("first two adds should succeed")
	}
	if b.Add(Info(SecInfo, "c", "three")) {
		t.Fatal("third add should hit the limit")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d", b.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(0)
	b.Add(Info(SecHeaderOnly, "x", "header only"))
	if b.HasWarnings() || b.HasErrors() {
		t.Fatal("info must not count as warning or error")
	}
	b.Add(Warning(RevNoToken, "y", "skipped"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatal("expected warnings only")
	}
	b.Add(Error(IORead, "z", "boom"))
	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := b.Count(SevWarning); got != 2 {
		t.Fatalf("Count(SevWarning) = %d, want 2", got)
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(0)
	b.Add(Info(SecInfo, "b", "info b"))
	b.Add(Warning(RevNoToken, "a", "warn a"))
	b.Add(Error(IORead, "b", "error b"))
	b.Sort()
	items := b.Items()
	if items[0].Path != "a" || items[1].Severity != SevError || items[2].Severity != SevInfo {
		t.Fatalf("unexpected order: %v", items)
	}
}

func TestBagConcurrentAdd(t *testing.T) {
	b := NewBag(0)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Add(Warning(RevNoToken, "dir", "skipped"))
		}()
	}
	wg.Wait()
	if b.Len() != 32 {
		t.Fatalf("Len = %d, want 32", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		RevNoToken:       "REV1001",
		SecMissingMarker: "SEC2001",
		IOUndecodable:    "IO4003",
		CmtRewritten:     "CMT5001",
		UnknownCode:      "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if RevNoToken.Title() == "" || Code(9999).Title() != "Unknown error" {
		t.Error("unexpected titles")
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Warning(RevNoToken, "programs/A", "skipping directory")
	if got := d.String(); got != "WARNING REV1001: programs/A: skipping directory" {
		t.Fatalf("String = %q", got)
	}
}

func TestSeverityMarshalText(t *testing.T) {
	got, err := SevWarning.MarshalText()
	if err != nil || string(got) != "warning" {
		t.Fatalf("MarshalText = %q, %v", got, err)
	}
}
