package driver

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"synport/internal/comments"
	"synport/internal/fsys"
)

func legacyDoc(eol string) string {
	return "var $X = 1" + eol + comments.LegacyBlock("CHECK SUPPLY", eol) + eol + "MEAS R1" + eol
}

func TestRewriteCommentsWritesChangedFilesOnly(t *testing.T) {
	m := fsys.NewMemory(map[string]string{
		"out/P1/a_merged.txt":  legacyDoc("\n"),
		"out/P2/b_merged.txt":  "nothing to do\n",
		"out/P2/c_merged.docx": legacyDoc("\n"),
	})
	results, err := RewriteComments(context.Background(), m, CommentOptions{Root: "out"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	a, b := results[0], results[1]
	if a.Path != filepath.Join("out", "P1", "a_merged.txt") || !a.Changed || a.Blocks != 1 {
		t.Fatalf("a = %+v", a)
	}
	if b.Changed || b.Blocks != 0 {
		t.Fatalf("b = %+v", b)
	}

	got, _ := m.File(a.Path)
	want := comments.Rewrite(legacyDoc("\n"))
	if got != want {
		t.Fatalf("file content = %q, want %q", got, want)
	}
	if strings.Contains(got, "REM{") {
		t.Fatalf("legacy block left behind: %q", got)
	}
	if docx, _ := m.File(filepath.Join("out", "P2", "c_merged.docx")); docx != legacyDoc("\n") {
		t.Fatal("non-matching extension was rewritten")
	}
}

func TestRewriteCommentsCheckAndStdout(t *testing.T) {
	orig := legacyDoc("\r\n")
	m := fsys.NewMemory(map[string]string{"out/a.txt": orig})

	results, err := RewriteComments(context.Background(), m, CommentOptions{Root: "out", Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("check results = %+v", results)
	}
	if got, _ := m.File("out/a.txt"); got != orig {
		t.Fatal("check mode modified the file")
	}

	results, err = RewriteComments(context.Background(), m, CommentOptions{Root: "out", Stdout: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Rewritten != comments.Rewrite(orig) {
		t.Fatalf("stdout content = %q", results[0].Rewritten)
	}
	if !strings.Contains(results[0].Rewritten, "\r\n") || strings.Contains(strings.ReplaceAll(results[0].Rewritten, "\r\n", ""), "\n") {
		t.Fatalf("line endings not preserved: %q", results[0].Rewritten)
	}
	if got, _ := m.File("out/a.txt"); got != orig {
		t.Fatal("stdout mode modified the file")
	}
}

func TestRewriteCommentsIsIdempotent(t *testing.T) {
	m := fsys.NewMemory(map[string]string{"out/a.txt": legacyDoc("\n")})
	if _, err := RewriteComments(context.Background(), m, CommentOptions{Root: "out"}); err != nil {
		t.Fatal(err)
	}
	first, _ := m.File("out/a.txt")
	results, err := RewriteComments(context.Background(), m, CommentOptions{Root: "out"})
	if err != nil {
		t.Fatal(err)
	}
	second, _ := m.File("out/a.txt")
	if first != second || results[0].Changed {
		t.Fatalf("second pass changed the file: %+v", results[0])
	}
}

func TestRewriteCommentsPerFileErrors(t *testing.T) {
	m := fsys.NewMemory(map[string]string{
		"out/a.txt": legacyDoc("\n"),
		"out/b.txt": legacyDoc("\n"),
	})
	m.Fail[filepath.Join("out", "a.txt")] = errors.New("locked")
	results, err := RewriteComments(context.Background(), m, CommentOptions{Root: "out"})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err == nil || results[0].Changed {
		t.Fatalf("a = %+v", results[0])
	}
	if results[1].Err != nil || !results[1].Changed {
		t.Fatalf("b = %+v", results[1])
	}
}

func TestRewriteCommentsUnlistableDirectory(t *testing.T) {
	m := fsys.NewMemory(map[string]string{
		"out/P1/a.txt": legacyDoc("\n"),
		"out/P2/b.txt": legacyDoc("\n"),
	})
	m.Fail[filepath.Join("out", "P1")] = errors.New("permission denied")
	results, err := RewriteComments(context.Background(), m, CommentOptions{Root: "out"})
	if err != nil {
		t.Fatalf("one unlistable directory must not abort the pass: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Path != filepath.Join("out", "P1") || results[0].Err == nil {
		t.Fatalf("P1 = %+v", results[0])
	}
	if results[1].Path != filepath.Join("out", "P2", "b.txt") || !results[1].Changed {
		t.Fatalf("b = %+v", results[1])
	}
	if got, _ := m.File(filepath.Join("out", "P2", "b.txt")); strings.Contains(got, "REM{") {
		t.Fatal("b.txt was not rewritten")
	}
}

func TestRewriteCommentFile(t *testing.T) {
	m := fsys.NewMemory(map[string]string{"out/a.txt": legacyDoc("\n")})
	res := RewriteCommentFile(context.Background(), m, "out/a.txt", CommentOptions{Check: true})
	if !res.Changed || res.Blocks != 1 {
		t.Fatalf("result = %+v", res)
	}
}
