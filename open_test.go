package csview

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/csview/blobstore"
)

const sampleCSV = "code,price\nK192,26.29\nA100,12.50\n"

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func lz4Bytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func scanAllText(t *testing.T, doc *Document) [][]string {
	t.Helper()
	var out [][]string
	err := doc.Scan(func(r *Record) bool {
		fields := make([]string, r.Len())
		for i := range fields {
			s, err := r.Text(i)
			require.NoError(t, err)
			fields[i] = s
		}
		out = append(out, fields)
		return true
	})
	require.NoError(t, err)
	return out
}

func TestOpen_CompressedSources(t *testing.T) {
	want := [][]string{
		{"code", "price"},
		{"K192", "26.29"},
		{"A100", "12.50"},
	}

	tests := []struct {
		name   string
		encode func(*testing.T, []byte) []byte
	}{
		{name: "gzip", encode: gzipBytes},
		{name: "zstd", encode: zstdBytes},
		{name: "lz4", encode: lz4Bytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Deliberately no file extension: detection is by magic bytes.
			path := filepath.Join(t.TempDir(), "data.bin")
			require.NoError(t, os.WriteFile(path, tt.encode(t, []byte(sampleCSV)), 0o600))

			doc, err := Open(path)
			require.NoError(t, err)
			defer doc.Close()

			assert.Equal(t, len(sampleCSV), doc.Size())
			assert.Equal(t, want, scanAllText(t, doc))
		})
	}
}

func TestOpen_Uncompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	doc, err := Open(path)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, len(sampleCSV), doc.Size())
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	doc, err := Open(path)
	require.NoError(t, err)
	defer doc.Close()

	records := 0
	require.NoError(t, doc.Scan(func(r *Record) bool { records++; return true }))
	assert.Zero(t, records)
}

func TestOpenStore_CompressedBlob(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	store.Put("data.csv.zst", zstdBytes(t, []byte(sampleCSV)))

	doc, err := OpenStore(ctx, store, "data.csv.zst")
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, len(sampleCSV), doc.Size())

	records := 0
	require.NoError(t, doc.Scan(func(r *Record) bool { records++; return true }))
	assert.Equal(t, 3, records)
}

func TestDetectCompressionBytes(t *testing.T) {
	assert.Equal(t, compressionGzip, detectCompressionBytes([]byte{0x1f, 0x8b, 0x08}))
	assert.Equal(t, compressionZstd, detectCompressionBytes([]byte{0x28, 0xb5, 0x2f, 0xfd}))
	assert.Equal(t, compressionLZ4, detectCompressionBytes([]byte{0x04, 0x22, 0x4d, 0x18}))
	assert.Equal(t, compressionNone, detectCompressionBytes([]byte("code,")))
	assert.Equal(t, compressionNone, detectCompressionBytes(nil))
}
