package fsys

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExcludeHidesDirectoryTree(t *testing.T) {
	m := NewMemory(map[string]string{
		"src/P1/a.tes":         "a",
		"src/old/P2/b.tes":     "b",
		"src/P3/old/c.tes":     "c",
		"src/P4/draft.bak.tes": "d",
		"src/P4/e.tes":         "e",
	})
	p, err := Exclude(m, "src", []string{"**/old", "**/*.bak.tes"})
	if err != nil {
		t.Fatal(err)
	}
	dirs, err := p.ListDirectories("src")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"src",
		filepath.Join("src", "P1"),
		filepath.Join("src", "P3"),
		filepath.Join("src", "P4"),
	}
	if diff := cmp.Diff(want, dirs); diff != "" {
		t.Fatalf("dirs mismatch (-want +got):\n%s", diff)
	}
	names, err := p.ListFiles(filepath.Join("src", "P4"), ".tes")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"e.tes"}, names); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestExcludeEmptyPatternsReturnsProvider(t *testing.T) {
	m := NewMemory(nil)
	p, err := Exclude(m, "src", []string{" ", ""})
	if err != nil {
		t.Fatal(err)
	}
	if p != Provider(m) {
		t.Fatal("expected the wrapped provider to be returned as is")
	}
}

func TestExcludeRejectsBadPattern(t *testing.T) {
	if _, err := Exclude(NewMemory(nil), "src", []string{"[unclosed"}); err == nil {
		t.Fatal("expected invalid pattern error")
	}
}
