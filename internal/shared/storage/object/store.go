package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for fetching and storing binary documents.
// Stored objects are write-once: Store never overwrites an existing key in
// practice because callers generate fresh keys per artifact.
type ObjectStore interface {
	// Fetch opens the object at the given reference for reading.
	Fetch(ctx context.Context, reference string) (io.ReadCloser, error)
	// Store writes the reader contents at key and returns a public URL.
	Store(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
	// Delete removes the object at key. Used only to compensate a failed
	// record write; regular operation never deletes.
	Delete(ctx context.Context, key string) error
}
