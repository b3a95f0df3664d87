package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations. The media
// module only ever talks to this interface, so an object-store backend can
// replace the local one without touching upload handling.
type Storage interface {
	// Save writes content at the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the file at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file at the given relative path.
	Delete(ctx context.Context, path string) error
}
