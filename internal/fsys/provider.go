// Package fsys is the file-provider boundary of the migration tool. The
// migration and comment passes only talk to a Provider, never to os directly.
package fsys

import "synport/internal/source"

// Provider enumerates directories and moves text in and out of files.
type Provider interface {
	// ListDirectories returns root and every directory below it, sorted.
	ListDirectories(root string) ([]string, error)
	// ListFiles returns the base names of regular files in dir whose name
	// ends with suffix, sorted. An empty suffix lists every file.
	ListFiles(dir, suffix string) ([]string, error)
	ReadText(path string) (string, error)
	WriteText(path, content string) error
	EnsureDirectory(path string) error
}

// ErrUndecodable is wrapped by ReadText when file bytes are not valid in the
// provider's encoding.
var ErrUndecodable = source.ErrUndecodable
