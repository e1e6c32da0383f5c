// Package blobstore abstracts read access to immutable CSV blobs.
//
// A Store resolves names to Blobs; a Blob is a finite, read-only byte
// sequence. Local blobs are memory-mapped and expose their bytes without
// copying via the optional Mappable interface; remote blobs (S3, MinIO)
// are read range-wise or downloaded whole via the optional Downloader
// interface so csview can materialize and map them.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for locating immutable CSV blobs.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs whose bytes are directly
// addressable. Parsing such a blob needs no copy at all.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// Downloader is an optional interface for Blobs that can transfer their
// whole content efficiently (e.g. ranged multi-part downloads).
type Downloader interface {
	// Download writes the blob's full content to w.
	Download(ctx context.Context, w io.WriterAt) (int64, error)
}
