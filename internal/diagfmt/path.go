package diagfmt

import (
	"path/filepath"

	"synport/internal/source"
)

func formatPath(p string, mode PathMode, base string) string {
	if p == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base != "" {
			if rel, err := source.RelativePath(p, base); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(p)
	}
	return source.DisplayPath(p)
}
