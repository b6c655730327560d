package fsys

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Excluding wraps a Provider and hides directories and files whose path,
// relative to Root, matches one of Patterns (doublestar syntax, slash
// separated). A directory is hidden together with everything below it.
type Excluding struct {
	Provider
	Root     string
	Patterns []string
}

// Exclude returns p unchanged when patterns is empty.
func Exclude(p Provider, root string, patterns []string) (Provider, error) {
	cleaned := make([]string, 0, len(patterns))
	for _, pat := range patterns {
		pat = strings.TrimSpace(filepath.ToSlash(pat))
		if pat == "" {
			continue
		}
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pat)
		}
		cleaned = append(cleaned, pat)
	}
	if len(cleaned) == 0 {
		return p, nil
	}
	return &Excluding{Provider: p, Root: root, Patterns: cleaned}, nil
}

func (e *Excluding) ListDirectories(root string) ([]string, error) {
	dirs, err := e.Provider.ListDirectories(root)
	if err != nil {
		return nil, err
	}
	out := dirs[:0:0]
	for _, dir := range dirs {
		if !e.dirExcluded(dir) {
			out = append(out, dir)
		}
	}
	return out, nil
}

func (e *Excluding) ListFiles(dir, suffix string) ([]string, error) {
	if e.dirExcluded(dir) {
		return nil, nil
	}
	names, err := e.Provider.ListFiles(dir, suffix)
	if err != nil {
		return nil, err
	}
	out := names[:0:0]
	for _, name := range names {
		if !e.match(filepath.Join(dir, name)) {
			out = append(out, name)
		}
	}
	return out, nil
}

func (e *Excluding) dirExcluded(dir string) bool {
	rel, ok := e.rel(dir)
	if !ok || rel == "." {
		return false
	}
	parts := strings.Split(rel, "/")
	for i := range parts {
		if e.matchRel(strings.Join(parts[:i+1], "/")) {
			return true
		}
	}
	return false
}

func (e *Excluding) match(path string) bool {
	rel, ok := e.rel(path)
	if !ok {
		return false
	}
	return e.matchRel(rel)
}

func (e *Excluding) matchRel(rel string) bool {
	for _, pat := range e.Patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (e *Excluding) rel(path string) (string, bool) {
	rel, err := filepath.Rel(e.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
