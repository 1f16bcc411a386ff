package rcforest

import "sort"

// buildChildGroup ternarizes vertex u's child list into a structure
// where every node (real or synthetic) has at most two group children,
// so the contraction in column.go never has to reason about more than
// bounded-degree-three nodes. It mirrors a Cartesian treap: children
// are ordered by a priority drawn from the forest's deterministic hash
// (see randomBit/priority in rng.go) so the resulting chain of
// synthetic branch nodes is randomized rather than a fixed
// left-to-right list, keeping its expected depth low once the
// contraction's own compress step starts folding it — the same
// mechanism that folds any other degree-two chain. Every synthetic node
// introduced here carries the vertex monoid's neutral element and no
// edge label, so it contributes nothing to any aggregate.
//
// cols grows in place: newly created synthetic nodes are appended to
// it and returned indices always refer to valid slots in the grown
// slice.
func (f *RCForest[V, E]) buildChildGroup(children []int, cols *[]column[V]) int {
	if len(children) == 0 {
		return -1
	}
	ordered := make([]int, len(children))
	copy(ordered, children)
	sort.Slice(ordered, func(i, j int) bool {
		return priority(f.seed, ordered[i]) > priority(f.seed, ordered[j])
	})
	return f.chainGroup(ordered, cols)
}

func (f *RCForest[V, E]) chainGroup(kids []int, cols *[]column[V]) int {
	if len(kids) == 1 {
		return kids[0]
	}
	rest := f.chainGroup(kids[1:], cols)
	s := newSynthetic(cols, f.vMonoid.Neutral())
	(*cols)[s].groupLeft = kids[0]
	(*cols)[s].groupRight = rest
	(*cols)[kids[0]].groupParent = s
	(*cols)[rest].groupParent = s
	return s
}

func newSynthetic[V comparable](cols *[]column[V], neutral V) int {
	id := len(*cols)
	*cols = append(*cols, column[V]{
		groupParent: -1,
		groupLeft:   -1,
		groupRight:  -1,
		vertexSum:   neutral,
	})
	return id
}
