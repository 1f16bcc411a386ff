package loopdrv

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ForkJoin partitions [lo, hi) into fixed-size chunks and hands them out
// to a pool of worker goroutines on demand, so a worker that finishes
// its chunk early steals the next one instead of sitting idle. Workers
// defaults to runtime.GOMAXPROCS(0) when zero or negative.
type ForkJoin struct {
	Workers   int
	ChunkSize int
}

func (d ForkJoin) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (d ForkJoin) chunkSize() int {
	if d.ChunkSize > 0 {
		return d.ChunkSize
	}
	return 64
}

func (d ForkJoin) ForEach(lo, hi int, body func(i int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	workers := d.workers()
	chunk := d.chunkSize()
	if n <= chunk || workers <= 1 {
		for i := lo; i < hi; i++ {
			body(i)
		}
		return
	}

	var next atomic.Int64
	next.Store(int64(lo))

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				start := int(next.Add(int64(chunk))) - chunk
				if start >= hi {
					return nil
				}
				end := start + chunk
				if end > hi {
					end = hi
				}
				for i := start; i < end; i++ {
					body(i)
				}
			}
		})
	}
	_ = g.Wait()
}

// PrefixSum computes an inclusive prefix sum with a classic three-pass
// work-efficient scheme: per-chunk local sums in parallel, a small
// sequential scan over chunk totals, then a parallel pass that adds
// each chunk's carry-in to its own inclusive sums.
func (d ForkJoin) PrefixSum(lo, hi int, read func(i int) int, write func(i, sum int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	chunk := d.chunkSize()
	if n <= chunk {
		Sequential{}.PrefixSum(lo, hi, read, write)
		return
	}

	nChunks := (n + chunk - 1) / chunk
	localTotal := make([]int, nChunks)
	localSum := make([]int, n)

	var g errgroup.Group
	for c := 0; c < nChunks; c++ {
		c := c
		g.Go(func() error {
			start := lo + c*chunk
			end := start + chunk
			if end > hi {
				end = hi
			}
			sum := 0
			for i := start; i < end; i++ {
				sum += read(i)
				localSum[i-lo] = sum
			}
			localTotal[c] = sum
			return nil
		})
	}
	_ = g.Wait()

	carry := make([]int, nChunks)
	running := 0
	for c := 0; c < nChunks; c++ {
		carry[c] = running
		running += localTotal[c]
	}

	var g2 errgroup.Group
	for c := 0; c < nChunks; c++ {
		c := c
		g2.Go(func() error {
			start := lo + c*chunk
			end := start + chunk
			if end > hi {
				end = hi
			}
			offset := carry[c]
			for i := start; i < end; i++ {
				write(i, offset+localSum[i-lo])
			}
			return nil
		})
	}
	_ = g2.Wait()
}

var _ Driver = ForkJoin{}
