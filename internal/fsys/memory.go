package fsys

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory Provider for tests and dry runs. Directories exist
// when a file lives below them or when EnsureDirectory created them.
type Memory struct {
	mu      sync.Mutex
	files   map[string]string
	dirs    map[string]bool
	created []string
	// Fail maps a cleaned path to an error returned by ReadText/WriteText,
	// or by ListFiles when the path is a directory.
	Fail map[string]error
}

var _ Provider = (*Memory)(nil)

// NewMemory builds a provider seeded with files (path -> content).
func NewMemory(files map[string]string) *Memory {
	m := &Memory{
		files: make(map[string]string, len(files)),
		dirs:  make(map[string]bool),
		Fail:  make(map[string]error),
	}
	for path, content := range files {
		path = filepath.Clean(path)
		m.files[path] = content
		m.addParents(path)
	}
	return m
}

func (m *Memory) addParents(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
		if parent := filepath.Dir(dir); parent == dir {
			return
		}
	}
}

func within(root, path string) bool {
	if root == "." {
		return !filepath.IsAbs(path)
	}
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func (m *Memory) ListDirectories(root string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	root = filepath.Clean(root)
	if !m.dirs[root] {
		return nil, fmt.Errorf("list %s: %w", root, fs.ErrNotExist)
	}
	var out []string
	for dir := range m.dirs {
		if within(root, dir) {
			out = append(out, dir)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) ListFiles(dir, suffix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = filepath.Clean(dir)
	if err := m.Fail[dir]; err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	if !m.dirs[dir] {
		return nil, fmt.Errorf("list %s: %w", dir, fs.ErrNotExist)
	}
	var out []string
	for path := range m.files {
		if filepath.Dir(path) == dir && strings.HasSuffix(filepath.Base(path), suffix) {
			out = append(out, filepath.Base(path))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) ReadText(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if err := m.Fail[path]; err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

func (m *Memory) WriteText(path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if err := m.Fail[path]; err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if !m.dirs[filepath.Dir(path)] {
		return fmt.Errorf("write %s: parent directory: %w", path, fs.ErrNotExist)
	}
	m.files[path] = content
	return nil
}

func (m *Memory) EnsureDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	if !m.dirs[path] {
		m.created = append(m.created, path)
	}
	m.dirs[path] = true
	m.addParents(path)
	return nil
}

// File returns the content stored at path.
func (m *Memory) File(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[filepath.Clean(path)]
	return content, ok
}

// Created lists directories made by EnsureDirectory that did not exist before.
func (m *Memory) Created() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]string(nil), m.created...)
	sort.Strings(out)
	return out
}
