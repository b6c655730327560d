package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, defaultManifest)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findManifest(nested)
	if err != nil || !ok {
		t.Fatalf("findManifest = %v, %v", ok, err)
	}
	if got != want {
		t.Fatalf("found %q, want %q", got, want)
	}
}

func TestLoadDefaultManifest(t *testing.T) {
	m, err := loadManifest(writeManifest(t, t.TempDir(), defaultManifest))
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Migrate.Extension != ".tes" || m.Config.Comments.Width != 79 {
		t.Fatalf("unexpected config %+v", m.Config)
	}
	if !m.defined("migrate", "empty_section") || m.defined("migrate", "nope") {
		t.Fatal("IsDefined bookkeeping is wrong")
	}
}

func TestLoadManifestRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"policy":   "[migrate]\nempty_section = \"abort\"\n",
		"encoding": "[migrate]\nencoding = \"ebcdic\"\n",
		"jobs":     "[migrate]\njobs = -1\n",
		"unknown":  "[migrate]\nsorce = \"typo\"\n",
		"width":    "[comments]\nwidth = 0\n",
		"syntax":   "[migrate\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadManifest(writeManifest(t, t.TempDir(), content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func newMigrateFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate"}
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().String("empty-section", "skip", "")
	cmd.Flags().String("header-file", "", "")
	cmd.Flags().StringArray("exclude", nil, "")
	cmd.Flags().String("encoding", "utf-8", "")
	cmd.Flags().String("extension", ".tes", "")
	cmd.Flags().String("suffix", "_merged", "")
	cmd.Flags().String("output-extension", ".txt", "")
	cmd.Flags().String("marker", "TARE :", "")
	return cmd
}

func TestResolveMigrateSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	m, err := loadManifest(writeManifest(t, dir, strings.Join([]string{
		"[migrate]",
		`source = "legacy"`,
		`output = "converted"`,
		`empty_section = "header-only"`,
		`exclude = ["**/old"]`,
		"jobs = 2",
	}, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	cmd := newMigrateFlagsCmd()
	if err := cmd.Flags().Parse([]string{"--jobs", "8", "--exclude", "**/tmp", "--exclude", "**/bak"}); err != nil {
		t.Fatal(err)
	}
	s, err := resolveMigrateSettings(cmd, nil, m)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != filepath.Join(dir, "legacy") || s.Output != filepath.Join(dir, "converted") {
		t.Fatalf("paths not resolved against the manifest: %+v", s)
	}
	if s.EmptySection != "header-only" || s.Jobs != 8 || s.Extension != ".tes" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if diff := cmp.Diff([]string{"**/tmp", "**/bak"}, s.Exclude); diff != "" {
		t.Fatalf("exclude mismatch (-want +got):\n%s", diff)
	}

	s, err = resolveMigrateSettings(newMigrateFlagsCmd(), []string{"src", "dst"}, m)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != "src" || s.Output != "dst" || s.Jobs != 2 {
		t.Fatalf("positional arguments not applied: %+v", s)
	}
}

func TestResolveMigrateSettingsNeedsSource(t *testing.T) {
	if _, err := resolveMigrateSettings(newMigrateFlagsCmd(), nil, nil); err == nil {
		t.Fatal("expected error without a source directory")
	}
	s, err := resolveMigrateSettings(newMigrateFlagsCmd(), []string{"src"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Output != defaultOutputDir || s.Suffix != "_merged" || s.OutputExtension != ".txt" {
		t.Fatalf("defaults not applied: %+v", s)
	}
}

func TestResolveCommentSettingsFill(t *testing.T) {
	m, err := loadManifest(writeManifest(t, t.TempDir(), "[comments]\nfill = true\nwidth = 90\n"))
	if err != nil {
		t.Fatal(err)
	}
	cmd := &cobra.Command{Use: "comments"}
	cmd.Flags().Int("width", 79, "")
	cmd.Flags().Bool("fill", false, "")
	cmd.Flags().String("extension", ".txt", "")
	cmd.Flags().String("encoding", "utf-8", "")

	s, err := resolveCommentSettings(cmd, nil, m)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Fill || s.Width != 90 {
		t.Fatalf("manifest not applied: %+v", s)
	}

	if err := cmd.Flags().Parse([]string{"--fill=false"}); err != nil {
		t.Fatal(err)
	}
	if s, err = resolveCommentSettings(cmd, nil, m); err != nil {
		t.Fatal(err)
	}
	if s.Fill {
		t.Fatal("--fill=false should override the manifest")
	}
}
