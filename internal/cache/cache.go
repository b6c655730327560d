// Package cache is the on-disk ledger of previous migrations. An entry
// remembers which source revision and header produced an output file so a
// rerun can leave untouched outputs alone.
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"synport/internal/source"
)

// SchemaVersion changes whenever Entry's encoding changes; older entries are
// treated as misses.
const SchemaVersion uint16 = 1

// Entry describes one written output file.
type Entry struct {
	Schema uint16

	Dir    string // source directory
	Source string // chosen revision file name
	Token  string // its revision token

	SourceHash source.Digest
	HeaderHash source.Digest

	Output     string // output file path
	OutputHash source.Digest
	Size       uint32
	Written    time.Time
}

// NewEntry fills hashes and size from the texts involved in a migration.
func NewEntry(dir, src, token, sourceText, header, output, outputText string) (Entry, error) {
	size, err := safecast.Conv[uint32](len(outputText))
	if err != nil {
		return Entry{}, fmt.Errorf("output %s too large: %w", output, err)
	}
	return Entry{
		Schema:     SchemaVersion,
		Dir:        dir,
		Source:     src,
		Token:      token,
		SourceHash: source.Sum(sourceText),
		HeaderHash: source.Sum(header),
		Output:     output,
		OutputHash: source.Sum(outputText),
		Size:       size,
		Written:    time.Now().UTC(),
	}, nil
}

// Matches reports whether e was produced from the same source text and
// header as want.
func (e Entry) Matches(want Entry) bool {
	return e.Schema == SchemaVersion &&
		e.Source == want.Source &&
		e.SourceHash == want.SourceHash &&
		e.HeaderHash == want.HeaderHash &&
		e.OutputHash == want.OutputHash
}

// Cache stores entries as msgpack files keyed by the sha256 of the output
// path. A nil *Cache is valid and never hits. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open uses dir as the cache root, creating it if needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir returns $XDG_CACHE_HOME/app or ~/.cache/app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDefault opens the cache at DefaultDir(app).
func OpenDefault(app string) (*Cache, error) {
	dir, err := DefaultDir(app)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return Open(dir)
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(output string) string {
	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	key := source.Sum(filepath.ToSlash(abs))
	return filepath.Join(c.dir, "outputs", hex.EncodeToString(key[:])+".mp")
}

// Put writes e atomically (temp file + rename).
func (c *Cache) Put(e Entry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(e.Output)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&e); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the entry recorded for output.
func (c *Cache) Get(output string) (Entry, bool, error) {
	if c == nil {
		return Entry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(output))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cache entry for %s: %w", output, err)
	}
	if e.Schema != SchemaVersion {
		return Entry{}, false, nil
	}
	return e, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
