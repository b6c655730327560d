package source

import "crypto/sha256"

type (
	// FileFlags encodes metadata about a loaded text file.
	FileFlags uint8
	// Digest is a fixed 256-bit content hash.
	Digest [32]byte
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileHasCRLF
	// FileTranscoded marks text decoded from a non UTF-8 charset.
	FileTranscoded
)

// File captures metadata and decoded content for a single text file.
type File struct {
	Path  string
	Text  string
	Hash  Digest
	Flags FileFlags
}

// NewFile builds a File from already decoded text.
func NewFile(path, text string, flags FileFlags) *File {
	if HasCRLF(text) {
		flags |= FileHasCRLF
	}
	return &File{
		Path:  normalizePath(path),
		Text:  text,
		Hash:  Sum(text),
		Flags: flags,
	}
}

// Sum hashes text content.
func Sum(text string) Digest {
	return sha256.Sum256([]byte(text))
}

// Combine builds an aggregate hash: H(a || b || ...). Order matters.
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether the digest was never set.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
