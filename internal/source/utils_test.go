package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "prog.tes")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(baseDir, "nested", "prog.tes")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "prog.tes"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestMirrorPath(t *testing.T) {
	src := filepath.Join("in", "programs")
	dst := filepath.Join("out", "portage")

	got, err := MirrorPath(src, filepath.Join(src, "A", "B"), dst)
	if err != nil {
		t.Fatalf("MirrorPath: %v", err)
	}
	if want := filepath.Join(dst, "A", "B"); got != want {
		t.Fatalf("MirrorPath = %q, want %q", got, want)
	}

	got, err = MirrorPath(src, src, dst)
	if err != nil {
		t.Fatalf("MirrorPath(root): %v", err)
	}
	if got != dst {
		t.Fatalf("MirrorPath(root) = %q, want %q", got, dst)
	}

	if _, err := MirrorPath(src, filepath.Join("elsewhere", "x"), dst); err == nil {
		t.Fatal("expected error for directory outside source root")
	}
}

func TestLineEnding(t *testing.T) {
	cases := map[string]string{
		"a\r\nb":  "\r\n",
		"a\nb":    "\n",
		"single":  "\n",
		"\nfirst": "\n",
	}
	for in, want := range cases {
		if got := LineEnding(in); got != want {
			t.Errorf("LineEnding(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTrimExt(t *testing.T) {
	tests := map[string]string{
		"prog_20231205AC.tes": "prog_20231205AC",
		"noext":               "noext",
		".tes":                ".tes",
		"..tes":               "..tes",
		".hidden.tes":         ".hidden",
		"a.b.tes":             "a.b",
	}
	for name, want := range tests {
		if got := TrimExt(name); got != want {
			t.Errorf("TrimExt(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	data, had := RemoveBOM([]byte("\xEF\xBB\xBFTARE :"))
	if !had || string(data) != "TARE :" {
		t.Fatalf("RemoveBOM = %q, %v", data, had)
	}
	data, had = RemoveBOM([]byte("ab"))
	if had || string(data) != "ab" {
		t.Fatalf("RemoveBOM(short) = %q, %v", data, had)
	}
}
