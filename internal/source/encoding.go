package source

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUndecodable is returned when bytes are not valid in the selected charset.
var ErrUndecodable = errors.New("undecodable text")

// Encoding names a text charset used for legacy program files.
type Encoding struct {
	Name string
	enc  encoding.Encoding
}

// UTF8 is the default encoding. Invalid sequences are rejected, not replaced.
var UTF8 = Encoding{Name: "utf-8"}

var encodings = map[string]Encoding{
	"utf-8":        UTF8,
	"utf8":         UTF8,
	"utf-8-bom":    {Name: "utf-8-bom", enc: unicode.UTF8BOM},
	"windows-1252": {Name: "windows-1252", enc: charmap.Windows1252},
	"cp1252":       {Name: "windows-1252", enc: charmap.Windows1252},
	"iso-8859-1":   {Name: "iso-8859-1", enc: charmap.ISO8859_1},
	"latin1":       {Name: "iso-8859-1", enc: charmap.ISO8859_1},
	"iso-8859-15":  {Name: "iso-8859-15", enc: charmap.ISO8859_15},
}

// LookupEncoding resolves a charset name. An empty name selects UTF-8.
func LookupEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return UTF8, nil
	}
	enc, ok := encodings[key]
	if !ok {
		return Encoding{}, fmt.Errorf("unknown encoding %q (expected utf-8|utf-8-bom|windows-1252|iso-8859-1|iso-8859-15)", name)
	}
	return enc, nil
}

func (e Encoding) String() string {
	if e.Name == "" {
		return UTF8.Name
	}
	return e.Name
}

// Decode converts raw file bytes into text. A leading UTF-8 BOM is always
// stripped and reported through the returned flags.
func (e Encoding) Decode(data []byte) (string, FileFlags, error) {
	var flags FileFlags
	data, hadBOM := RemoveBOM(data)
	if hadBOM {
		flags |= FileHadBOM
	}
	if e.enc == nil || e.enc == unicode.UTF8BOM {
		if !utf8.Valid(data) {
			return "", flags, fmt.Errorf("%w: invalid %s sequence", ErrUndecodable, e)
		}
		return string(data), flags, nil
	}
	out, _, err := transform.Bytes(e.enc.NewDecoder(), data)
	if err != nil {
		return "", flags, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(out), flags | FileTranscoded, nil
}

// Encode converts text back into the charset's bytes.
func (e Encoding) Encode(text string) ([]byte, error) {
	if e.enc == nil {
		return []byte(text), nil
	}
	out, _, err := transform.Bytes(e.enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}
	return out, nil
}
