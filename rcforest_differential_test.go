package rcforest_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	rcforest "github.com/rcforest/go-rcforest"
	"github.com/rcforest/go-rcforest/internal/builder"
	"github.com/rcforest/go-rcforest/internal/naive"
	"github.com/rcforest/go-rcforest/internal/oracle"
	"github.com/rcforest/go-rcforest/internal/rctest"
)

// TestDifferentialAgainstNaiveForest runs a pseudo-random mix of
// attach/detach/relabel edits against both the contraction-backed
// forest and the naive O(depth) reference implementation, from a fixed
// seed for reproducibility, and asserts every query agrees. It runs once
// per looping driver: the contraction results must not depend on whether
// scheduled_apply re-contracts each level sequentially or with ForkJoin.
func TestDifferentialAgainstNaiveForest(t *testing.T) {
	for name, opt := range drivers {
		t.Run(name, func(t *testing.T) {
			runDifferentialAgainstNaiveForest(t, opt)
		})
	}
}

func runDifferentialAgainstNaiveForest(t *testing.T, driverOpt rcforest.Option) {
	const nVertices = 80
	const nRounds = 40

	rng := rand.New(rand.NewPCG(1, 2))

	real := rcforest.New[int, int](rctest.IntSum{}, rctest.IntAdd{}, rcforest.WithSeed(7), rcforest.WithConnectivity(oracle.NewLinkCutTree()), driverOpt)
	ref := naive.New[int, int](rctest.IntSum{}, rctest.IntAdd{})

	for i := 0; i < nVertices; i++ {
		rv := real.CreateVertex(1)
		nv := ref.CreateVertex(1)
		require.Equal(t, rv, nv)
	}

	for round := 0; round < nRounds; round++ {
		batch := 1 + rng.IntN(5)
		for b := 0; b < batch; b++ {
			// One in three ops is a detach, so detach+reattach into the
			// same tree is routinely exercised against the real
			// connectivity oracle, not just plain attaches.
			if rng.IntN(3) == 0 {
				v := rng.IntN(nVertices)
				rootReal, errR := real.ScheduledIsRoot(v)
				rootRef, errN := ref.ScheduledIsRoot(v)
				require.NoError(t, errR)
				require.NoError(t, errN)
				require.Equal(t, rootRef, rootReal, "ScheduledIsRoot(%d) disagreed at round %d", v, round)
				if !rootReal {
					require.NoError(t, real.ScheduledDetach(v))
					require.NoError(t, ref.ScheduledDetach(v))
				}
				continue
			}
			a := rng.IntN(nVertices)
			c := rng.IntN(nVertices)
			up, down := rng.IntN(10), rng.IntN(10)
			if a == c {
				continue
			}
			errReal := real.ScheduledAttach(a, c, up, down)
			errRef := ref.ScheduledAttach(a, c, up, down)
			require.Equal(t, errReal == nil, errRef == nil, "attach(%d,%d) disagreed at round %d", a, c, round)
		}
		require.NoError(t, real.ScheduledApply())
		require.NoError(t, ref.ScheduledApply())

		for v := 0; v < nVertices; v++ {
			rs, err1 := real.GetSubtree(v)
			ns, err2 := ref.GetSubtree(v)
			require.NoError(t, err1)
			require.NoError(t, err2)
			require.Equal(t, ns, rs, "GetSubtree(%d) diverged at round %d", v, round)
		}
		for i := 0; i < 20; i++ {
			a := rng.IntN(nVertices)
			c := rng.IntN(nVertices)
			rp, errR := real.GetPath(a, c)
			np, errN := ref.GetPath(a, c)
			require.Equal(t, errN == nil, errR == nil)
			if errN == nil {
				require.Equal(t, np, rp, "GetPath(%d,%d) diverged at round %d", a, c, round)
			}
		}
	}
}

// TestBuilderMatchesScheduledEquivalent checks that the static builder
// produces a forest query-equivalent to building the same edges through
// the ordinary Scheduled* path.
func TestBuilderMatchesScheduledEquivalent(t *testing.T) {
	var b builder.Builder[int, int]
	for i := 0; i < 10; i++ {
		b.AddVertex(1)
	}
	edges := [][2]int{{0, 1}, {0, 2}, {1, 3}, {1, 4}, {2, 5}}
	for _, e := range edges {
		require.NoError(t, b.AddEdge(e[0], e[1], 1, 1))
	}
	built, err := builder.Build[int, int](&b, rctest.IntSum{}, rctest.IntAdd{})
	require.NoError(t, err)

	manual := rcforest.New[int, int](rctest.IntSum{}, rctest.IntAdd{})
	for i := 0; i < 10; i++ {
		manual.CreateVertex(1)
	}
	for _, e := range edges {
		require.NoError(t, manual.ScheduledAttach(e[0], e[1], 1, 1))
	}
	require.NoError(t, manual.ScheduledApply())

	for v := 0; v < 10; v++ {
		bs, err := built.GetSubtree(v)
		require.NoError(t, err)
		ms, err := manual.GetSubtree(v)
		require.NoError(t, err)
		require.Equal(t, ms, bs)
	}
}

// TestBuilderRejectsCycle checks the union-find cycle rejection fires
// before the edge ever reaches the forest.
func TestBuilderRejectsCycle(t *testing.T) {
	var b builder.Builder[int, int]
	for i := 0; i < 3; i++ {
		b.AddVertex(1)
	}
	require.NoError(t, b.AddEdge(0, 1, 1, 1))
	require.NoError(t, b.AddEdge(1, 2, 1, 1))
	require.Error(t, b.AddEdge(2, 0, 1, 1))
}

// TestReplayReverseRestoresState checks that applying a batch and then
// its derived inverse makes the vertex the batch attached a root again.
func TestReplayReverseRestoresState(t *testing.T) {
	f := rcforest.New[int, int](rctest.IntSum{}, rctest.IntAdd{})
	for i := 0; i < 5; i++ {
		f.CreateVertex(1)
	}
	require.NoError(t, f.ScheduledAttach(0, 1, 1, 1))
	require.NoError(t, f.ScheduledAttach(0, 2, 1, 1))
	require.NoError(t, f.ScheduledApply())

	prior := map[int]rctest.PriorEdge[int]{3: {Parent: -1}}
	require.NoError(t, f.ScheduledAttach(1, 3, 5, 5))
	ops := []rctest.Op[int]{{Kind: rctest.OpAttach, Vertex: 3, Parent: 1, Up: 5, Down: 5}}
	require.NoError(t, f.ScheduledApply())

	require.NoError(t, rctest.ReplayReverse[int, int](f, ops, prior))

	root, err := f.IsRoot(3)
	require.NoError(t, err)
	require.True(t, root)
}
