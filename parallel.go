package csview

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ScanParallel delivers the indexed records to fn from up to workers
// goroutines. Each worker runs its own parse session over a contiguous
// slice of record ordinals; sessions never share mutable state, so no
// locking is needed on the region side. fn must be safe for concurrent
// use and receives records in no particular order.
//
// Cancellation is cooperative: fn returning false stops all workers
// without error, a cancelled ctx stops them with ctx's error.
// workers <= 0 means GOMAXPROCS.
func (x *Index) ScanParallel(ctx context.Context, workers int, fn RecordFunc) error {
	n := len(x.spans)
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	var stopped atomic.Bool
	g, ctx := errgroup.WithContext(ctx)

	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}

		g.Go(func() error {
			sc := &Scanner{opts: x.opts}
			rec := &Record{data: x.data, spans: make([]span, 0, x.opts.fieldCap)}

			for i := lo; i < hi; i++ {
				if stopped.Load() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := sc.next(x.data, x.spans[i].start, i, rec); err != nil {
					return err
				}
				if !fn(rec) {
					stopped.Store(true)
					return nil
				}
			}
			return nil
		})
	}

	return g.Wait()
}
