package cache

import (
	"path/filepath"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "P1", "prog_20240101AB_merged.txt")
	e, err := NewEntry("src/P1", "prog_20240101AB.tes", "20240101AB", "TARE : 1\n", "HDR\n", out, "HDR\nTARE : 1\n")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(e); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.Get(out)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if !got.Matches(e) {
		t.Fatalf("entry does not match: %+v vs %+v", got, e)
	}
	if got.Size != uint32(len("HDR\nTARE : 1\n")) || got.Token != "20240101AB" {
		t.Fatalf("unexpected entry %+v", got)
	}

	changed, err := NewEntry("src/P1", "prog_20240101AB.tes", "20240101AB", "TARE : 2\n", "HDR\n", out, "HDR\nTARE : 2\n")
	if err != nil {
		t.Fatal(err)
	}
	if got.Matches(changed) {
		t.Fatal("entry must not match a different source text")
	}
}

func TestGetMissAndDropAll(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get("nowhere.txt"); ok || err != nil {
		t.Fatalf("expected clean miss, got %v, %v", ok, err)
	}
	e, err := NewEntry("d", "a.tes", "20240101AB", "s", "h", "out.txt", "o")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(e); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get("out.txt"); ok {
		t.Fatal("entry survived DropAll")
	}
	if err := c.Put(e); err != nil {
		t.Fatalf("cache unusable after DropAll: %v", err)
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.Put(Entry{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get("x"); ok || err != nil {
		t.Fatalf("nil cache Get = %v, %v", ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultDirHonoursXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	dir, err := DefaultDir("synport")
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(base, "synport") {
		t.Fatalf("dir = %q", dir)
	}
}
