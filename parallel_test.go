package csview

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/csview/testutil"
)

func TestScanParallel_SeesEveryRecord(t *testing.T) {
	data := testutil.NewRNG(42).GenerateCSV(500, 4)
	x, err := NewIndex(data)
	require.NoError(t, err)

	var mu sync.Mutex
	seen := make(map[int]bool)

	err = x.ScanParallel(context.Background(), 4, func(r *Record) bool {
		mu.Lock()
		seen[r.Line()] = true
		mu.Unlock()
		return true
	})
	require.NoError(t, err)
	assert.Len(t, seen, 500)
}

func TestScanParallel_MatchesSequentialSum(t *testing.T) {
	doc, err := Open(productsFile)
	require.NoError(t, err)
	defer doc.Close()

	var mu sync.Mutex
	var total float64

	err = doc.ScanParallel(context.Background(), 3, func(r *Record) bool {
		if r.Line() == 0 {
			return true
		}
		// Plain error handling here: the callback runs in worker
		// goroutines where require.NoError must not be used.
		price, perr := r.Float(2)
		qty, qerr := r.Int(3)
		if perr != nil || qerr != nil {
			return false
		}

		mu.Lock()
		total += price * float64(qty)
		mu.Unlock()
		return true
	})
	require.NoError(t, err)
	assert.InDelta(t, 586.58, total, 0.001)
}

func TestScanParallel_EarlyStop(t *testing.T) {
	data := testutil.NewRNG(7).GenerateCSV(1000, 3)
	x, err := NewIndex(data)
	require.NoError(t, err)

	var delivered atomic.Int64
	err = x.ScanParallel(context.Background(), 4, func(r *Record) bool {
		return delivered.Add(1) < 10
	})
	require.NoError(t, err)

	// Workers stop promptly; in-flight records may still land.
	assert.GreaterOrEqual(t, delivered.Load(), int64(10))
	assert.Less(t, delivered.Load(), int64(1000))
}

func TestScanParallel_ContextCancel(t *testing.T) {
	data := testutil.NewRNG(11).GenerateCSV(200, 3)
	x, err := NewIndex(data)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = x.ScanParallel(ctx, 4, func(r *Record) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanParallel_MoreWorkersThanRecords(t *testing.T) {
	x, err := NewIndex([]byte("a\nb\n"))
	require.NoError(t, err)

	var delivered atomic.Int64
	err = x.ScanParallel(context.Background(), 16, func(r *Record) bool {
		delivered.Add(1)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), delivered.Load())
}

func TestScanParallel_EmptyRegion(t *testing.T) {
	x, err := NewIndex(nil)
	require.NoError(t, err)

	require.NoError(t, x.ScanParallel(context.Background(), 4, func(r *Record) bool {
		t.Fatal("no records expected")
		return false
	}))
}

func TestScanParallel_DefaultWorkers(t *testing.T) {
	x, err := NewIndex([]byte("a\nb\nc\n"))
	require.NoError(t, err)

	var delivered atomic.Int64
	require.NoError(t, x.ScanParallel(context.Background(), 0, func(r *Record) bool {
		delivered.Add(1)
		return true
	}))
	assert.Equal(t, int64(3), delivered.Load())
}
