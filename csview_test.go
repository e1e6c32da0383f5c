package csview

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/csview/blobstore"
)

const productsFile = "testdata/products.csv"

func TestDocument_OpenScanClose(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)

	records := 0
	err = doc.Scan(func(r *Record) bool {
		records++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 7, records) // header + 6 products

	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close()) // idempotent
}

func TestDocument_Header(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)
	defer doc.Close()

	hdr, err := doc.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "name", "price", "quantity"}, hdr)
}

func TestDocument_RevenueSum(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)
	defer doc.Close()

	var total float64
	err = doc.Scan(func(r *Record) bool {
		if r.Line() == 0 {
			return true
		}
		price, err := r.Float(2)
		require.NoError(t, err)
		qty, err := r.Int(3)
		require.NoError(t, err)
		total += price * float64(qty)
		return true
	})
	require.NoError(t, err)
	assert.InDelta(t, 586.58, total, 0.001)
}

func TestDocument_LookupRevenue(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)
	defer doc.Close()

	x, err := doc.Index()
	require.NoError(t, err)

	rec, ok := x.Lookup(0, []byte("K192"))
	require.True(t, ok)

	price, err := rec.Float(2)
	require.NoError(t, err)
	qty, err := rec.Int(3)
	require.NoError(t, err)
	assert.InDelta(t, 131.45, price*float64(qty), 0.001)
}

func TestDocument_ScanAfterClose(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)
	require.NoError(t, doc.Close())

	err = doc.Scan(func(r *Record) bool { return true })
	assert.ErrorIs(t, err, ErrRegionUnavailable)

	_, err = doc.Index()
	assert.ErrorIs(t, err, ErrRegionUnavailable)
}

func TestDocument_CloseMidScan(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)
	defer doc.Close()

	seen := 0
	err = doc.Scan(func(r *Record) bool {
		seen++
		// Unmap the region underneath the running scan.
		require.NoError(t, doc.Close())
		return true
	})
	assert.ErrorIs(t, err, ErrRegionUnavailable)
	assert.Equal(t, 1, seen)
}

func TestDocument_OpenBytes(t *testing.T) {
	doc := OpenBytes([]byte("a,b\n1,2\n"))
	defer doc.Close()

	assert.Equal(t, 8, doc.Size())

	records := 0
	err := doc.Scan(func(r *Record) bool {
		records++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 2, records)
}

func TestDocument_OpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestOpenStore_Mappable(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	store.Put("products.csv", []byte("code,qty\nK192,5\n"))

	doc, err := OpenStore(ctx, store, "products.csv")
	require.NoError(t, err)
	defer doc.Close()

	records := 0
	err = doc.Scan(func(r *Record) bool {
		records++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 2, records)
}

func TestOpenStore_Local(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewLocalStore("testdata")
	doc, err := OpenStore(ctx, store, "products.csv")
	require.NoError(t, err)
	defer doc.Close()

	hdr, err := doc.Header()
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "name", "price", "quantity"}, hdr)
}

func TestDocument_ScanLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	doc, err := Open(productsFile, WithLogger(logger))
	require.NoError(t, err)
	defer doc.Close()

	require.NoError(t, doc.Scan(func(r *Record) bool { return true }))

	assert.Contains(t, buf.String(), "csv source opened")
	assert.Contains(t, buf.String(), "scan finished")
	assert.Contains(t, buf.String(), "records=7")
}

func TestOpenStore_NotFound(t *testing.T) {
	ctx := context.Background()

	_, err := OpenStore(ctx, blobstore.NewMemoryStore(), "nope.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
