package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errNotRelative = errors.New("path is outside base directory")

// RemoveBOM strips a leading UTF-8 byte order mark.
func RemoveBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// HasCRLF reports whether text contains at least one \r\n terminator.
func HasCRLF(text string) bool {
	return strings.Contains(text, "\r\n")
}

// LineEnding returns the terminator used by the first line break in text,
// falling back to "\n" for single-line text.
func LineEnding(text string) string {
	idx := strings.IndexByte(text, '\n')
	if idx > 0 && text[idx-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// TrimExt drops the final extension from a file name. Leading dots are not
// an extension, so ".tes" stays ".tes".
func TrimExt(name string) string {
	rest := strings.TrimLeft(name, ".")
	return name[:len(name)-len(rest)] + strings.TrimSuffix(rest, filepath.Ext(rest))
}

// RelativePath returns target relative to base in slash form.
// Paths outside base fall back to the cleaned absolute target.
func RelativePath(target, base string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return normalizePath(absTarget), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// MirrorPath maps dir under srcRoot onto the same relative location under dstRoot.
func MirrorPath(srcRoot, dir, dstRoot string) (string, error) {
	rel, err := filepath.Rel(srcRoot, dir)
	if err != nil {
		return "", fmt.Errorf("mirror %s: %w", dir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("mirror %s: %w", dir, errNotRelative)
	}
	return filepath.Join(dstRoot, rel), nil
}

// DisplayPath shortens path for terminal output, relative to the working
// directory when possible.
func DisplayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return normalizePath(path)
	}
	rel, err := RelativePath(path, wd)
	if err != nil {
		return normalizePath(path)
	}
	return rel
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
