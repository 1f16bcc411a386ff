package rcforest

import (
	"math/bits"

	"github.com/rcforest/go-rcforest/internal/foresterr"
)

// buildAncestorTables constructs the binary-lifting tables GetPath
// walks: up[k][v] is v's 2^k-th ancestor, upJump[k][v] is the
// edge-monoid sum of the 2^k edges from v up to that ancestor composed
// nearest-to-farthest, and downJump[k][v] is the same set of edges
// composed farthest-to-nearest (the order needed when walking a
// downward path segment found by climbing its lower endpoint upward).
func (f *RCForest[V, E]) buildAncestorTables() {
	n := len(f.parent)
	log := bits.Len(uint(n)) + 1
	if log < 1 {
		log = 1
	}

	f.depth = make([]int, n)
	f.up = make([][]int, log)
	f.upJump = make([][]E, log)
	f.downJump = make([][]E, log)
	for k := 0; k < log; k++ {
		f.up[k] = make([]int, n)
		f.upJump[k] = make([]E, n)
		f.downJump[k] = make([]E, n)
	}
	if n == 0 {
		return
	}

	order := make([]int, 0, n)
	var dfs func(v int)
	dfs = func(v int) {
		order = append(order, v)
		for _, c := range f.children[v] {
			f.depth[c] = f.depth[v] + 1
			dfs(c)
		}
	}
	for v, p := range f.parent {
		if p == -1 {
			dfs(v)
		}
	}

	for _, v := range order {
		if f.parent[v] == -1 {
			f.up[0][v] = v
		} else {
			f.up[0][v] = f.parent[v]
			f.upJump[0][v] = f.edgeUp[v]
			f.downJump[0][v] = f.edgeDown[v]
		}
	}
	for k := 1; k < log; k++ {
		for v := 0; v < n; v++ {
			mid := f.up[k-1][v]
			f.up[k][v] = f.up[k-1][mid]
			f.upJump[k][v] = f.eMonoid.Sum(f.upJump[k-1][v], f.upJump[k-1][mid])
			f.downJump[k][v] = f.eMonoid.Sum(f.downJump[k-1][mid], f.downJump[k-1][v])
		}
	}
}

func (f *RCForest[V, E]) lca(a, b int) int {
	if f.depth[a] < f.depth[b] {
		a, b = b, a
	}
	diff := f.depth[a] - f.depth[b]
	for k := 0; diff > 0; k++ {
		if diff&1 == 1 {
			a = f.up[k][a]
		}
		diff >>= 1
	}
	if a == b {
		return a
	}
	for k := len(f.up) - 1; k >= 0; k-- {
		if f.up[k][a] != f.up[k][b] {
			a, b = f.up[k][a], f.up[k][b]
		}
	}
	return f.up[0][a]
}

func (f *RCForest[V, E]) climbUp(v, dist int) E {
	res := f.eMonoid.Neutral()
	for k := 0; dist > 0; k++ {
		if dist&1 == 1 {
			res = f.eMonoid.Sum(res, f.upJump[k][v])
			v = f.up[k][v]
		}
		dist >>= 1
	}
	return res
}

func (f *RCForest[V, E]) climbDown(v, dist int) E {
	res := f.eMonoid.Neutral()
	for k := 0; dist > 0; k++ {
		if dist&1 == 1 {
			res = f.eMonoid.Sum(f.downJump[k][v], res)
			v = f.up[k][v]
		}
		dist >>= 1
	}
	return res
}

// GetPath returns the edge-monoid aggregate along the unique path from
// first to last: the edges climbed from first up to their lowest
// common ancestor, combined with the edges descended from that
// ancestor down to last. It returns a Disconnected error if first and
// last lie in different trees.
func (f *RCForest[V, E]) GetPath(first, last int) (E, error) {
	var zero E
	if err := f.checkVertex("GetPath", first); err != nil {
		return zero, err
	}
	if err := f.checkVertex("GetPath", last); err != nil {
		return zero, err
	}
	if f.dirty {
		if _, err := f.recompute(); err != nil {
			return zero, err
		}
	}
	if f.ancestorRoot(first) != f.ancestorRoot(last) {
		return zero, foresterr.New("GetPath", foresterr.Disconnected, first, last)
	}
	meet := f.lca(first, last)
	up := f.climbUp(first, f.depth[first]-f.depth[meet])
	down := f.climbDown(last, f.depth[last]-f.depth[meet])
	return f.eMonoid.Sum(up, down), nil
}

func (f *RCForest[V, E]) ancestorRoot(v int) int {
	log := len(f.up)
	for k := log - 1; k >= 0; k-- {
		if f.up[k][v] != v {
			v = f.up[k][v]
		}
	}
	return v
}
