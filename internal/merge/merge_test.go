package merge

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"synport/internal/section"
)

func TestMergeConcatenatesWithoutSeparator(t *testing.T) {
	got := Merge("HEADER\n", []string{"TARE : a\n", "cmd1\n", "cmd2"})
	want := "HEADER\nTARE : a\ncmd1\ncmd2"
	if got != want {
		t.Fatalf("Merge = %q, want %q", got, want)
	}
}

func TestMergeEmptySection(t *testing.T) {
	if got := Merge("H\n", nil); got != "H\n" {
		t.Fatalf("Merge(nil) = %q", got)
	}
	if got := Merge("", []string{"a\n"}); got != "a\n" {
		t.Fatalf("Merge(empty header) = %q", got)
	}
}

func TestDefaultHeaderShape(t *testing.T) {
	if err := CheckHeader(DefaultHeader, section.Marker); err != nil {
		t.Fatalf("DefaultHeader: %v", err)
	}
	if !strings.HasSuffix(DefaultHeader, "START OF THE TEST  ///////////////////////////\n"+strings.Repeat("/", 79)+"\n") {
		t.Fatal("DefaultHeader must end with the START OF THE TEST banner")
	}
	if !strings.Contains(DefaultHeader, `var $BoxTestConn = "C:\Test Programs\" + $DMS_PN`) {
		t.Fatal("DefaultHeader lost its single backslashes")
	}
}

func TestCheckHeaderRejectsMarker(t *testing.T) {
	err := CheckHeader("// TARE : in header\n", section.Marker)
	if !errors.Is(err, ErrHeaderHasMarker) {
		t.Fatalf("CheckHeader error = %v", err)
	}
	if err := CheckHeader("anything", ""); err != nil {
		t.Fatalf("empty marker should never conflict: %v", err)
	}
}

// Re-extracting a merged document returns the original section.
func TestMergeThenExtractRoundTrip(t *testing.T) {
	docs := []string{
		"preamble\nmore\nTARE : begin\nstep 1\nstep 2\n",
		"TARE : only\n",
		"junk\r\nTARE : crlf\r\nstep\r\n",
	}
	for _, doc := range docs {
		sec := section.Extract(section.SplitLines(doc), section.Marker)
		merged := Merge(DefaultHeader, sec)
		again := section.Extract(section.SplitLines(merged), section.Marker)
		if diff := cmp.Diff(sec, again); diff != "" {
			t.Fatalf("round trip mismatch for %q (-want +got):\n%s", doc, diff)
		}
	}
}

func TestWithLineEnding(t *testing.T) {
	if got := WithLineEnding("a\nb\n", "\r\n"); got != "a\r\nb\r\n" {
		t.Fatalf("WithLineEnding = %q", got)
	}
	if got := WithLineEnding("a\r\nb\n", "\r\n"); got != "a\r\nb\r\n" {
		t.Fatalf("WithLineEnding(mixed) = %q", got)
	}
	if got := WithLineEnding("a\nb\n", "\n"); got != "a\nb\n" {
		t.Fatalf("WithLineEnding(lf) = %q", got)
	}
}
