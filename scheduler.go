package rcforest

import (
	"time"

	"github.com/rcforest/go-rcforest/internal/foresterr"
)

// ScheduledIsChanged reports whether vertex has a pending edit (its own
// label, an incident edge, or its attachment point) not yet committed
// by ScheduledApply.
func (f *RCForest[V, E]) ScheduledIsChanged(v int) (bool, error) {
	if err := f.checkVertex("ScheduledIsChanged", v); err != nil {
		return false, err
	}
	return f.schedChanged[v], nil
}

// ScheduledGetParent returns vertex's pending parent, or vertex itself
// if it is a scheduled root.
func (f *RCForest[V, E]) ScheduledGetParent(v int) (int, error) {
	if err := f.checkVertex("ScheduledGetParent", v); err != nil {
		return 0, err
	}
	if f.schedParent[v] == -1 {
		return v, nil
	}
	return f.schedParent[v], nil
}

func (f *RCForest[V, E]) ScheduledIsRoot(v int) (bool, error) {
	if err := f.checkVertex("ScheduledIsRoot", v); err != nil {
		return false, err
	}
	return f.schedParent[v] == -1, nil
}

func (f *RCForest[V, E]) ScheduledNEdges() int {
	n := 0
	for _, p := range f.schedParent {
		if p != -1 {
			n++
		}
	}
	return n
}

func (f *RCForest[V, E]) ScheduledNRoots() int {
	n := 0
	for _, p := range f.schedParent {
		if p == -1 {
			n++
		}
	}
	return n
}

func (f *RCForest[V, E]) ScheduledNChildren(v int) (int, error) {
	if err := f.checkVertex("ScheduledNChildren", v); err != nil {
		return 0, err
	}
	n := 0
	for c, p := range f.schedParent {
		if p == v {
			_ = c
			n++
		}
	}
	return n, nil
}

// ScheduledHasChanges reports whether any edit is pending.
func (f *RCForest[V, E]) ScheduledHasChanges() bool {
	return f.state == schedDirty
}

func (f *RCForest[V, E]) markChanged(v int) {
	f.schedChanged[v] = true
	f.state = schedDirty
}

// ScheduledSetVertexInfo stages a relabel of vertex, taking effect on
// the next ScheduledApply.
func (f *RCForest[V, E]) ScheduledSetVertexInfo(v int, label V) error {
	if err := f.checkVertex("ScheduledSetVertexInfo", v); err != nil {
		return err
	}
	f.schedVInfo[v] = label
	f.ops = append(f.ops, scheduledOp{kind: opSetVertexInfo, vertex: v})
	f.markChanged(v)
	return nil
}

// ScheduledSetEdgeInfo stages a relabel of the edge between vertex and
// its (scheduled) parent. vertex must not be a scheduled root.
func (f *RCForest[V, E]) ScheduledSetEdgeInfo(v int, up, down E) error {
	if err := f.checkVertex("ScheduledSetEdgeInfo", v); err != nil {
		return err
	}
	if f.schedParent[v] == -1 {
		return foresterr.New("ScheduledSetEdgeInfo", foresterr.InvalidArgument, v)
	}
	f.schedEdgeUp[v] = up
	f.schedEdgeDn[v] = down
	f.ops = append(f.ops, scheduledOp{kind: opSetEdgeInfo, vertex: v})
	f.markChanged(v)
	return nil
}

// ScheduledDetach stages the removal of vertex's edge to its (scheduled)
// parent, turning vertex into a root. vertex must not already be a
// scheduled root.
func (f *RCForest[V, E]) ScheduledDetach(v int) error {
	if err := f.checkVertex("ScheduledDetach", v); err != nil {
		return err
	}
	parent := f.schedParent[v]
	if parent == -1 {
		return foresterr.New("ScheduledDetach", foresterr.InvalidArgument, v)
	}
	f.checker.Cut(parent, v)
	f.schedParent[v] = -1
	var zero E
	f.schedEdgeUp[v] = zero
	f.schedEdgeDn[v] = zero
	f.ops = append(f.ops, scheduledOp{kind: opDetach, vertex: v})
	f.markChanged(v)
	return nil
}

// ScheduledAttach stages making child a child of parent, with up/down
// as the new edge's labels. child must currently be a scheduled root,
// and the attach must not create a cycle; cycle detection is delegated
// to the configured connectivity oracle (see WithConnectivity) and is a
// no-op unless one was installed.
func (f *RCForest[V, E]) ScheduledAttach(parent, child int, up, down E) error {
	if err := f.checkVertex("ScheduledAttach", parent); err != nil {
		return err
	}
	if err := f.checkVertex("ScheduledAttach", child); err != nil {
		return err
	}
	if f.schedParent[child] != -1 {
		return foresterr.New("ScheduledAttach", foresterr.InvalidArgument, parent, child)
	}
	if parent == child {
		return foresterr.New("ScheduledAttach", foresterr.InvalidArgument, parent, child)
	}
	if f.checker.TestConnectivity(parent, child) {
		return foresterr.New("ScheduledAttach", foresterr.InvalidArgument, parent, child)
	}
	f.checker.Link(parent, child)
	f.schedParent[child] = parent
	f.schedEdgeUp[child] = up
	f.schedEdgeDn[child] = down
	f.ops = append(f.ops, scheduledOp{kind: opAttach, vertex: child, parent: parent})
	f.markChanged(child)
	return nil
}

// ScheduledApply commits every staged edit, rebuilding the derived
// query structures (rake-and-compress contraction and the binary-lifting
// ancestor tables) from the new committed topology.
func (f *RCForest[V, E]) ScheduledApply() error {
	if f.state != schedDirty {
		f.checker.Flush()
		return nil
	}
	f.state = schedApplying
	start := time.Now()

	copy(f.parent, f.schedParent)
	copy(f.vInfo, f.schedVInfo)
	copy(f.edgeUp, f.schedEdgeUp)
	copy(f.edgeDown, f.schedEdgeDn)

	for i := range f.children {
		f.children[i] = f.children[i][:0]
	}
	nEdges := 0
	for v, p := range f.parent {
		if p != -1 {
			f.children[p] = append(f.children[p], v)
			nEdges++
		}
	}
	f.nEdges = nEdges

	batchSize := len(f.ops)
	f.ops = f.ops[:0]
	for i := range f.schedChanged {
		f.schedChanged[i] = false
	}
	f.checker.Flush()
	f.dirty = true
	levels, err := f.recompute()
	if err != nil {
		f.state = schedClean
		return err
	}

	f.state = schedClean
	f.metrics.observeApply(levels, batchSize, time.Since(start).Seconds())
	f.logger.Debug("rcforest: scheduled apply committed",
		"batch_size", batchSize, "levels", levels, "vertices", len(f.parent), "edges", f.nEdges)
	return nil
}

// ScheduledCancel discards every staged edit since the last commit,
// restoring the shadow state to match the live one.
func (f *RCForest[V, E]) ScheduledCancel() {
	if f.state != schedDirty {
		return
	}
	copy(f.schedParent, f.parent)
	copy(f.schedVInfo, f.vInfo)
	copy(f.schedEdgeUp, f.edgeUp)
	copy(f.schedEdgeDn, f.edgeDown)
	for i := range f.schedChanged {
		f.schedChanged[i] = false
	}
	f.ops = f.ops[:0]
	f.checker.Unroll()
	f.state = schedClean
	f.metrics.observeCancel()
}
