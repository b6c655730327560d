package source

import (
	"errors"
	"testing"
)

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8", "cp1252", "Windows-1252", "latin1", "iso-8859-15"} {
		if _, err := LookupEncoding(name); err != nil {
			t.Errorf("LookupEncoding(%q) error: %v", name, err)
		}
	}
	if _, err := LookupEncoding("ebcdic"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestDecodeUTF8RejectsInvalid(t *testing.T) {
	_, _, err := UTF8.Decode([]byte{'a', 0xE0, 'b'})
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	text, flags, err := UTF8.Decode([]byte("\xEF\xBB\xBFhello"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if text != "hello" {
		t.Errorf("text = %q", text)
	}
	if flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
}

func TestWindows1252RoundTrip(t *testing.T) {
	enc, err := LookupEncoding("windows-1252")
	if err != nil {
		t.Fatalf("LookupEncoding: %v", err)
	}
	// "Passage de AC à AD" with à encoded as 0xE0.
	raw := []byte("de AC \xE0 AD")
	text, flags, err := enc.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if text != "de AC à AD" {
		t.Fatalf("decoded %q", text)
	}
	if flags&FileTranscoded == 0 {
		t.Error("expected FileTranscoded flag")
	}
	back, err := enc.Encode(text)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(back) != string(raw) {
		t.Fatalf("round trip = %q, want %q", back, raw)
	}
}
