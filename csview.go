// Package csview parses CSV files without copying field bytes.
//
// The file is mapped into the address space once and every parsed field
// is exposed as a view (offset + length) into that mapping rather than a
// freshly allocated string. This targets large CSV files in
// memory-constrained environments where fields are consumed by streaming
// callback or retained as keys for sorting and lookup maps.
//
// # Quick Start
//
//	doc, err := csview.Open("products.csv")
//	if err != nil {
//	    panic(err)
//	}
//	defer doc.Close()
//
//	var total float64
//	err = doc.Scan(func(r *csview.Record) bool {
//	    if r.Line() == 0 {
//	        return true // skip header
//	    }
//	    price, _ := r.Float(2)
//	    qty, _ := r.Int(3)
//	    total += price * float64(qty)
//	    return true
//	})
//
// # Zero-Copy Contract
//
// Views returned by a Record are valid only while the originating region
// is alive and only until the scanner advances past that record. Copy
// what you keep. Unescaped is the single place the library copies bytes,
// because collapsing "" escapes cannot be done in place.
//
// # Sources
//
// Open maps a local file (decompressing zstd, lz4 and gzip sources to a
// temporary file first), OpenBytes borrows a caller-owned slice, and
// OpenStore materializes a blob from a blobstore.Store (local directory,
// S3, MinIO) and maps it.
//
// # Concurrency
//
// Scanning is single-threaded and synchronous: the callback runs in-line,
// one record at a time, in file order. The region is read-only shared
// state, so any number of scans over the same Document may run in
// parallel; ScanParallel does exactly that over a prebuilt record index.
package csview

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/csview/blobstore"
	"github.com/hupe1980/csview/internal/mmap"
)

// Document is a parseable CSV source: a mapped file, a borrowed byte
// slice, or a materialized remote blob. It owns the mapping (if any) and
// must be closed; every view parsed out of the document dies with it.
type Document struct {
	m       *mmap.Mapping
	data    []byte
	opts    options
	cleanup func() error
}

// Open maps the file at path and returns a Document over its bytes.
//
// Compressed files (zstd, lz4, gzip, detected by magic bytes rather than
// file extension) are decompressed into a temporary file which is then
// mapped and removed on Close.
func Open(path string, optFns ...Option) (*Document, error) {
	o := applyOptions(optFns)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kind, err := detectCompression(f)
	if err != nil {
		return nil, err
	}

	var (
		m       *mmap.Mapping
		cleanup func() error
	)
	if kind == compressionNone {
		m, err = mmap.Open(path)
		if err != nil {
			return nil, err
		}
	} else {
		dec, err := newDecompressor(kind, f)
		if err != nil {
			return nil, err
		}
		m, cleanup, err = materialize(dec)
		dec.Close()
		if err != nil {
			return nil, err
		}
	}

	if err := m.Advise(o.pattern); err != nil {
		o.logger.Debug("access advice failed", "path", path, "error", err)
	}

	o.logger.Debug("csv source opened",
		"path", path,
		"size", m.Size(),
		"compression", kind.String(),
	)

	return &Document{
		m:       m,
		data:    m.Bytes(),
		opts:    o,
		cleanup: cleanup,
	}, nil
}

// OpenBytes returns a Document over a caller-owned byte slice. The slice
// is borrowed, never copied; it must stay immutable and alive for the
// document's lifetime.
func OpenBytes(data []byte, optFns ...Option) *Document {
	return &Document{
		data: data,
		opts: applyOptions(optFns),
	}
}

// OpenStore opens the named blob from store and maps it. Blobs that
// support zero-copy access (blobstore.Mappable) are parsed in place;
// anything else is materialized into a temporary file first, using a
// ranged download when the blob supports one. Compressed blobs are
// handled the same way Open handles compressed files.
func OpenStore(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Document, error) {
	o := applyOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	if mb, ok := blob.(blobstore.Mappable); ok {
		data, err := mb.Bytes()
		if err == nil && detectCompressionBytes(data) == compressionNone {
			o.logger.Debug("blob opened in place", "name", name, "size", len(data))
			d := OpenBytes(data, optFns...)
			d.cleanup = blob.Close
			return d, nil
		}
	}

	tmp, err := os.CreateTemp("", "csview-*")
	if err != nil {
		blob.Close()
		return nil, err
	}

	if dl, ok := blob.(blobstore.Downloader); ok {
		_, err = dl.Download(ctx, tmp)
	} else {
		_, err = io.Copy(tmp, io.NewSectionReader(blob, 0, blob.Size()))
	}
	if cerr := blob.Close(); err == nil {
		err = cerr
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("materialize blob %q: %w", name, err)
	}

	d, err := Open(tmp.Name(), optFns...)
	if err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	prev := d.cleanup
	d.cleanup = func() error {
		if prev != nil {
			_ = prev()
		}
		return os.Remove(tmp.Name())
	}
	o.logger.Debug("blob materialized", "name", name, "size", d.Size())

	return d, nil
}

// Bytes returns the document's mapped region. The slice is valid until
// Close; for a closed mapping it is nil.
func (d *Document) Bytes() []byte {
	if d.m != nil {
		return d.m.Bytes()
	}
	return d.data
}

// Size returns the region length in bytes.
func (d *Document) Size() int {
	if d.m != nil {
		return d.m.Size()
	}
	return len(d.data)
}

// Close releases the mapping and any temporary file backing it. It is
// idempotent. All views into the document become invalid.
func (d *Document) Close() error {
	var err error
	if d.m != nil {
		err = d.m.Close()
	}
	if d.cleanup != nil {
		cleanup := d.cleanup
		d.cleanup = nil
		if cerr := cleanup(); err == nil {
			err = cerr
		}
	}
	return err
}

// Scan walks the document once, invoking fn per logical record. If the
// mapping is closed while the scan is running, the scan aborts with
// ErrRegionUnavailable before touching unmapped memory again.
func (d *Document) Scan(fn RecordFunc) error {
	if d.m != nil && d.m.Closed() {
		return ErrRegionUnavailable
	}

	var alive func() bool
	if d.m != nil {
		alive = func() bool { return !d.m.Closed() }
	}

	start := time.Now()
	records := 0
	sc := &Scanner{opts: d.opts}
	err := sc.scan(d.data, alive, func(r *Record) bool {
		records++
		return fn(r)
	})

	d.opts.logger.Debug("scan finished",
		"records", records,
		"duration", time.Since(start),
		"error", err,
	)

	return err
}

// ScanParallel consumes the document's records concurrently: a single
// structural pass finds record boundaries, then up to workers goroutines
// parse and deliver records. fn must be safe for concurrent use; records
// arrive in no particular order. A fn returning false, a context
// cancellation, or the first parse error stops all workers.
func (d *Document) ScanParallel(ctx context.Context, workers int, fn RecordFunc) error {
	if d.m != nil && d.m.Closed() {
		return ErrRegionUnavailable
	}
	x, err := newIndex(d.data, d.opts)
	if err != nil {
		return err
	}
	return x.ScanParallel(ctx, workers, fn)
}

// Index builds a random-access record index over the document.
func (d *Document) Index() (*Index, error) {
	if d.m != nil && d.m.Closed() {
		return nil, ErrRegionUnavailable
	}
	return newIndex(d.data, d.opts)
}

// Header returns the fields of the first record as copied strings.
func (d *Document) Header() ([]string, error) {
	var (
		hdr  []string
		herr error
	)
	err := d.Scan(func(r *Record) bool {
		hdr = make([]string, r.Len())
		for i := range hdr {
			if hdr[i], herr = r.Text(i); herr != nil {
				return false
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if herr != nil {
		return nil, herr
	}
	return hdr, nil
}
