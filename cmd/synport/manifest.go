package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"synport/internal/driver"
	"synport/internal/source"
)

const manifestName = "synport.toml"

type manifest struct {
	Path   string
	Root   string
	Config manifestConfig
	meta   toml.MetaData
}

type manifestConfig struct {
	Migrate  migrateConfig  `toml:"migrate"`
	Comments commentsConfig `toml:"comments"`
}

type migrateConfig struct {
	Source          string   `toml:"source"`
	Output          string   `toml:"output"`
	Extension       string   `toml:"extension"`
	Suffix          string   `toml:"suffix"`
	OutputExtension string   `toml:"output_extension"`
	Marker          string   `toml:"marker"`
	HeaderFile      string   `toml:"header_file"`
	EmptySection    string   `toml:"empty_section"`
	Exclude         []string `toml:"exclude"`
	Encoding        string   `toml:"encoding"`
	Jobs            int      `toml:"jobs"`
}

type commentsConfig struct {
	Root      string `toml:"root"`
	Extension string `toml:"extension"`
	Width     int    `toml:"width"`
	Fill      bool   `toml:"fill"`
	Encoding  string `toml:"encoding"`
}

// defined reports whether key was present in the file. A nil manifest
// defines nothing.
func (m *manifest) defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

// path resolves a manifest-relative path.
func (m *manifest) path(p string) string {
	if p == "" || filepath.IsAbs(p) || m == nil {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadManifest(path string) (*manifest, error) {
	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("migrate", "empty_section") {
		if _, err := driver.ParseEmptySectionPolicy(cfg.Migrate.EmptySection); err != nil {
			return nil, fmt.Errorf("%s: [migrate].empty_section: %w", path, err)
		}
	}
	if meta.IsDefined("migrate", "encoding") {
		if _, err := source.LookupEncoding(cfg.Migrate.Encoding); err != nil {
			return nil, fmt.Errorf("%s: [migrate].encoding: %w", path, err)
		}
	}
	if meta.IsDefined("migrate", "jobs") && cfg.Migrate.Jobs < 0 {
		return nil, fmt.Errorf("%s: [migrate].jobs must not be negative", path)
	}
	if meta.IsDefined("migrate", "extension") && !strings.HasPrefix(cfg.Migrate.Extension, ".") {
		return nil, fmt.Errorf("%s: [migrate].extension must start with a dot", path)
	}
	if meta.IsDefined("comments", "width") && cfg.Comments.Width <= 0 {
		return nil, fmt.Errorf("%s: [comments].width must be positive", path)
	}
	return &manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// manifestFor loads --config, or the nearest synport.toml above the working
// directory. It returns nil when there is none.
func manifestFor(cmd *cobra.Command) (*manifest, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		return loadManifest(explicit)
	}
	path, ok, err := findManifest(".")
	if err != nil || !ok {
		return nil, err
	}
	return loadManifest(path)
}

const defaultManifest = `# synport configuration. Command-line flags override these values.

[migrate]
source = "legacy"            # tree of SYNOR 1200 programs
output = "portage"           # mirrored output tree
extension = ".tes"
suffix = "_merged"
output_extension = ".txt"
marker = "TARE :"
header_file = ""             # empty = built-in SYNOR 5000 header
empty_section = "skip"       # skip | header-only
exclude = []                 # doublestar globs relative to source, e.g. "**/old"
encoding = "utf-8"           # utf-8 | windows-1252 | iso-8859-1 | iso-8859-15
jobs = 0                     # 0 = one worker per CPU

[comments]
root = "portage"
extension = ".txt"
width = 79
fill = false                 # true = pad the title line to width
encoding = "utf-8"
`
