// Package source abstracts where migration inputs are read from.
package source

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotDirectory is returned when a source root is not a directory.
	ErrNotDirectory = errors.New("source: root is not a directory")
	// ErrOutsideRoot is returned when a path escapes the source root.
	ErrOutsideRoot = errors.New("source: path outside root")
)

// Source provides read access to a tree of files.
type Source interface {
	// Root returns the absolute path of the tree.
	Root() string
	// Open opens a file by its path relative to Root.
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	// Close releases resources held by the source.
	Close() error
}
