package rcforest

import (
	"fmt"

	"github.com/rcforest/go-rcforest/internal/foresterr"
)

// verdict is the outcome a contraction level assigns to one node: root
// (it has converged, no further levels needed), rake (it is a leaf
// absorbed into its parent's vertex aggregate), compress (it is a
// degree-two chain vertex bypassed so its parent connects directly to
// its child), or copy-paste (nothing happened to it this level; it
// simply survives unchanged into the next one).
type verdict uint8

const (
	verdictCopyPaste verdict = iota
	verdictRake
	verdictCompress
	verdictRoot
)

// levelTrace is one node's outcome at one contraction level, kept only
// when WithDebugContraction is set.
type levelTrace struct {
	Level   int
	NodeID  int
	Verdict verdict
}

// DebugTrace returns the per-level contraction verdicts recorded during
// the most recent contraction rebuild (a ScheduledApply, or the lazy
// rebuild a query runs after CreateVertex), or nil if
// WithDebugContraction was not set. Exposed for tests and diagnostics only.
func (f *RCForest[V, E]) DebugTrace() []levelTrace { return f.lastTrace }

// column is the contraction engine's working state for one node of the
// ternarized structure: either a real vertex (id < n, one column per
// vertex, id == vertex index) or a synthetic branch node introduced
// solely to bound a high-fan-out vertex's child count to two per the
// Cartesian-treap split in treap.go. groupParent/groupLeft/groupRight
// describe the *current* bounded-degree tree, distinct from the
// authoritative logical topology in parent/children: a real vertex's
// groupParent is its logical parent directly only when it is that
// parent's sole child; otherwise it is a synthetic node standing in for
// part of the sibling group.
type column[V comparable] struct {
	groupParent, groupLeft, groupRight int
	vertexSum                          V
}

func (f *RCForest[V, E]) newColumnPool(n int) []column[V] {
	cols := make([]column[V], n)
	for i := range cols {
		cols[i] = column[V]{groupParent: -1, groupLeft: -1, groupRight: -1}
	}
	return cols
}

// buildContraction runs the randomized rake-and-compress contraction to
// completion over the current committed topology, returning the number
// of levels it needed and filling subtreeAgg for every real vertex.
// vertices whose tree is a single isolated root converge at level 0.
func (f *RCForest[V, E]) buildContraction() (int, error) {
	n := len(f.parent)
	f.subtreeAgg = make([]V, n)
	if n == 0 {
		return 0, nil
	}

	cols := f.newColumnPool(n)
	for v := 0; v < n; v++ {
		cols[v].vertexSum = f.vInfo[v]
	}

	for u := 0; u < n; u++ {
		if len(f.children[u]) == 0 {
			continue
		}
		root := f.buildChildGroup(f.children[u], &cols)
		cols[u].groupLeft = root
		if root != -1 {
			cols[root].groupParent = u
		}
	}
	for v := 0; v < n; v++ {
		if f.parent[v] != -1 {
			// groupParent was already assigned while building v's
			// parent's child group (directly to the parent when v is
			// its only child); this only falls back to the direct
			// logical edge if that left it unset.
			if cols[v].groupParent == -1 {
				cols[v].groupParent = f.parent[v]
			}
		}
	}

	total := len(cols)
	remaining := total
	verdicts := make([]verdict, total)
	alive := make([]bool, total)
	pendingChild := make([]int, total)
	for i := range alive {
		alive[i] = true
		pendingChild[i] = -1
	}

	const maxLevels = 4096
	level := 0
	var trace []levelTrace
	for remaining > 0 {
		if level > maxLevels {
			return level, foresterr.New("buildContraction", foresterr.InternalInvariant, n)
		}

		// expectedAffected is computed sequentially, before the decide
		// phase runs, by calling the same pure decideVerdict function the
		// decide phase itself calls — independently of whatever order or
		// concurrency f.driver.ForEach uses to actually produce verdicts.
		// Declaring it up front, rather than filling it in from inside the
		// very ForEach body being checked, is what gives the later
		// comparison discriminating power: a ForkJoin bug that calls body
		// with the wrong index, skips one, or otherwise scrambles which id
		// gets which verdict will disagree with a set computed the
		// ordinary sequential way, even though decideVerdict itself never
		// changes between the two passes.
		var expectedAffected map[int]struct{}
		if f.debugTrace {
			expectedAffected = make(map[int]struct{})
			for id := 0; id < total; id++ {
				if !alive[id] {
					continue
				}
				if v := f.decideVerdict(cols, id, level); v != verdictCopyPaste {
					expectedAffected[id] = struct{}{}
					if cols[id].groupParent != -1 {
						expectedAffected[cols[id].groupParent] = struct{}{}
					}
				}
			}
		}

		f.driver.ForEach(0, total, func(id int) {
			if !alive[id] {
				verdicts[id] = verdictCopyPaste
				return
			}
			verdicts[id] = f.decideVerdict(cols, id, level)
		})

		if expectedAffected != nil {
			for id := 0; id < total; id++ {
				if verdicts[id] == verdictCopyPaste {
					if alive[id] && f.decideVerdict(cols, id, level) != verdictCopyPaste {
						panic(fmt.Sprintf("rcforest: debug contraction: node %d missing its verdict at level %d", id, level))
					}
					continue
				}
				if _, ok := expectedAffected[id]; !ok {
					panic(fmt.Sprintf("rcforest: debug contraction: node %d (%v) outside its declared affected set at level %d", id, verdicts[id], level))
				}
			}
		}

		progressed := false
		for id := 0; id < total; id++ {
			if !alive[id] {
				continue
			}
			switch verdicts[id] {
			case verdictRoot:
				if id < n {
					f.subtreeAgg[id] = cols[id].vertexSum
				}
				alive[id] = false
				remaining--
				progressed = true
			case verdictRake:
				f.applyRake(cols, id, n)
				alive[id] = false
				remaining--
				progressed = true
			case verdictCompress:
				pendingChild[id] = f.applyCompress(cols, id)
				alive[id] = false
				remaining--
				progressed = true
			}
			if f.debugTrace {
				trace = append(trace, levelTrace{Level: level, NodeID: id, Verdict: verdicts[id]})
			}
		}
		level++
		if !progressed && remaining > 0 && level > maxLevels/2 {
			// Astronomically unlikely given independent coin flips;
			// force progress so a pathological seed cannot hang.
			if f.forceResolveOne(cols, alive, pendingChild, n) {
				remaining--
			}
		}
	}
	if f.debugTrace {
		f.lastTrace = trace
	}

	resolved := make([]bool, n)
	var resolve func(id int) V
	resolve = func(id int) V {
		if id >= n {
			if pendingChild[id] != -1 {
				return f.vMonoid.Sum(cols[id].vertexSum, resolve(pendingChild[id]))
			}
			return cols[id].vertexSum
		}
		if resolved[id] {
			return f.subtreeAgg[id]
		}
		if pendingChild[id] != -1 {
			f.subtreeAgg[id] = f.vMonoid.Sum(cols[id].vertexSum, resolve(pendingChild[id]))
		}
		resolved[id] = true
		return f.subtreeAgg[id]
	}
	for v := 0; v < n; v++ {
		resolve(v)
	}

	return level, nil
}

func (f *RCForest[V, E]) decideVerdict(cols []column[V], id, level int) verdict {
	hasParent := cols[id].groupParent != -1
	left := cols[id].groupLeft
	right := cols[id].groupRight
	degree := 0
	if left != -1 {
		degree++
	}
	if right != -1 {
		degree++
	}

	switch {
	case !hasParent && degree == 0:
		return verdictRoot
	case hasParent && degree == 0:
		return verdictRake
	case hasParent && degree == 1:
		child := left
		if child == -1 {
			child = right
		}
		parent := cols[id].groupParent
		childIsLeaf := cols[child].groupLeft == -1 && cols[child].groupRight == -1
		if !randomBit(f.seed, id, level) &&
			randomBit(f.seed, parent, level) &&
			randomBit(f.seed, child, level) &&
			!childIsLeaf {
			return verdictCompress
		}
		return verdictCopyPaste
	default:
		return verdictCopyPaste
	}
}

// applyRake folds id's accumulated vertex-monoid sum into its parent
// and detaches it. Because id is a leaf in the current bounded-degree
// structure, its own sum already represents its complete subtree
// contribution, so the fold is unconditional and final.
func (f *RCForest[V, E]) applyRake(cols []column[V], id, n int) {
	parent := cols[id].groupParent
	cols[parent].vertexSum = f.vMonoid.Sum(cols[parent].vertexSum, cols[id].vertexSum)
	if cols[parent].groupLeft == id {
		cols[parent].groupLeft = -1
	} else if cols[parent].groupRight == id {
		cols[parent].groupRight = -1
	}
	if id < n {
		f.subtreeAgg[id] = cols[id].vertexSum
	}
}

// applyCompress bypasses id, attaching its single surviving child
// directly to its parent, and returns that child's id. As with a rake,
// id's accumulated vertex-monoid sum is folded into its parent. Unlike
// a rake, this does not finalize id's own subtree aggregate: its child
// — still live — may go on to absorb more rakes of its own, so id's
// aggregate can only be completed once the child's final value is
// known. buildContraction resolves this dependency chain in a pass
// after the level loop.
func (f *RCForest[V, E]) applyCompress(cols []column[V], id int) int {
	parent := cols[id].groupParent
	cols[parent].vertexSum = f.vMonoid.Sum(cols[parent].vertexSum, cols[id].vertexSum)
	child := cols[id].groupLeft
	if child == -1 {
		child = cols[id].groupRight
	}
	if cols[parent].groupLeft == id {
		cols[parent].groupLeft = child
	} else if cols[parent].groupRight == id {
		cols[parent].groupRight = child
	}
	cols[child].groupParent = parent
	return child
}

// forceResolveOne deterministically resolves one waiting branch node so
// a run of maximally unlucky coin flips cannot stall contraction
// forever. It rakes or compresses the lowest-numbered live node that
// has a parent and at most one child, whichever of the two applies.
func (f *RCForest[V, E]) forceResolveOne(cols []column[V], alive []bool, pendingChild []int, n int) bool {
	for id, live := range alive {
		if !live {
			continue
		}
		hasParent := cols[id].groupParent != -1
		left, right := cols[id].groupLeft, cols[id].groupRight
		degree := 0
		if left != -1 {
			degree++
		}
		if right != -1 {
			degree++
		}
		if hasParent && degree == 0 {
			f.applyRake(cols, id, n)
			alive[id] = false
			return true
		}
		if hasParent && degree == 1 {
			pendingChild[id] = f.applyCompress(cols, id)
			alive[id] = false
			return true
		}
	}
	return false
}
