// Package loopdrv abstracts the execution model the contraction engine
// uses during scheduled_apply. The engine is written once against the
// Driver interface; swapping Sequential for ForkJoin turns the same
// re-contraction loop into its parallel variant without duplicating
// the algorithm.
//
// Two contracts are required of any Driver, matched by both
// implementations below:
//   - read-only access to level L while level L+1 is being written;
//   - a synchronization barrier between the phases of ForEach/PrefixSum
//     and whatever runs after they return, so the caller never observes
//     a partially-finished pass.
//
// A Driver that violates either breaks correctness, not just
// performance.
package loopdrv

// Driver runs bounded loops, optionally in parallel, over [lo, hi).
type Driver interface {
	// ForEach invokes body(i) once for every i in [lo, hi). Bodies may
	// run concurrently. ForEach does not return until every body call
	// has completed.
	ForEach(lo, hi int, body func(i int))

	// PrefixSum computes, for i in [lo, hi), write(i, inclusive prefix
	// sum of read(lo..i)). It does not return until every write has
	// completed.
	PrefixSum(lo, hi int, read func(i int) int, write func(i, sum int))
}
