package csview

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/csview/internal/mmap"
)

type compression int

const (
	compressionNone compression = iota
	compressionGzip
	compressionZstd
	compressionLZ4
)

func (c compression) String() string {
	switch c {
	case compressionGzip:
		return "gzip"
	case compressionZstd:
		return "zstd"
	case compressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func detectCompressionBytes(head []byte) compression {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return compressionGzip
	case bytes.HasPrefix(head, magicZstd):
		return compressionZstd
	case bytes.HasPrefix(head, magicLZ4):
		return compressionLZ4
	default:
		return compressionNone
	}
}

// detectCompression sniffs f's magic bytes and rewinds it.
func detectCompression(f *os.File) (compression, error) {
	var head [4]byte
	n, err := f.Read(head[:])
	if err != nil && err != io.EOF {
		return compressionNone, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return compressionNone, err
	}
	return detectCompressionBytes(head[:n]), nil
}

func newDecompressor(kind compression, r io.Reader) (io.ReadCloser, error) {
	switch kind {
	case compressionGzip:
		return gzip.NewReader(r)
	case compressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case compressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// materialize copies r into a temporary file and maps it. The returned
// cleanup removes the file; the mapping keeps its pages resident until
// then.
func materialize(r io.Reader) (*mmap.Mapping, func() error, error) {
	tmp, err := os.CreateTemp("", "csview-*")
	if err != nil {
		return nil, nil, err
	}
	path := tmp.Name()

	_, err = io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, nil, err
	}

	m, err := mmap.Open(path)
	if err != nil {
		os.Remove(path)
		return nil, nil, err
	}

	return m, func() error { return os.Remove(path) }, nil
}
