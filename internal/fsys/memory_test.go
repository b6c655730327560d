package fsys

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryListing(t *testing.T) {
	m := NewMemory(map[string]string{
		"src/P1/a.tes":      "a",
		"src/P1/b.tes":      "b",
		"src/P2/notes.docx": "n",
		"other/x.tes":       "x",
	})
	dirs, err := m.ListDirectories("src")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"src", filepath.Join("src", "P1"), filepath.Join("src", "P2")}
	if diff := cmp.Diff(want, dirs); diff != "" {
		t.Fatalf("dirs mismatch (-want +got):\n%s", diff)
	}
	names, err := m.ListFiles(filepath.Join("src", "P1"), ".tes")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.tes", "b.tes"}, names); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	names, err = m.ListFiles(filepath.Join("src", "P2"), ".tes")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no .tes files, got %v", names)
	}
}

func TestMemoryWriteRequiresDirectory(t *testing.T) {
	m := NewMemory(nil)
	path := filepath.Join("out", "P1", "a_merged.txt")
	if err := m.WriteText(path, "x"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := m.EnsureDirectory(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteText(path, "x"); err != nil {
		t.Fatal(err)
	}
	if got, ok := m.File(path); !ok || got != "x" {
		t.Fatalf("File = %q, %v", got, ok)
	}
	if diff := cmp.Diff([]string{filepath.Join("out", "P1")}, m.Created()); diff != "" {
		t.Fatalf("created mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryInjectedFailure(t *testing.T) {
	m := NewMemory(map[string]string{"src/P/a.tes": "a"})
	boom := errors.New("disk on fire")
	m.Fail[filepath.Join("src", "P", "a.tes")] = boom
	if _, err := m.ReadText("src/P/a.tes"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}
