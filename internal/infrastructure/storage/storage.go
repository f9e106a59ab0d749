package storage

import (
	"context"
	"io"
)

// BlobStore abstracts receipt/document blob storage. The portal ships a
// local-disk implementation; a cloud bucket can be swapped in behind the
// same interface.
type BlobStore interface {
	// Save writes the blob under key and returns the number of bytes written.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open opens the blob for reading.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the blob exists and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)
}
