// Package naive is a deliberately simple O(depth)-per-operation forest
// used as a correctness oracle for the rake-and-compress implementation:
// every query walks parent pointers or the children slice with no
// caching, no contraction, and no treap. It implements rcforest.Forest
// so property tests can run the same operation mix against both and
// compare results.
package naive

import (
	rcforest "github.com/rcforest/go-rcforest"
	"github.com/rcforest/go-rcforest/internal/foresterr"
)

type vertex[V comparable, E comparable] struct {
	parent   int
	children []int
	vInfo    V
	edgeUp   E
	edgeDown E

	schedParent   int
	schedChildren []int
	schedVInfo    V
	schedEdgeUp   E
	schedEdgeDown E
	modCount      int
}

// Forest is the naive reference implementation of rcforest.Forest.
type Forest[V comparable, E comparable] struct {
	vMonoid rcforest.VertexMonoid[V]
	eMonoid rcforest.EdgeMonoid[E]

	vertices     []vertex[V, E]
	edgeCount    int
	modCount     int
	hasScheduled bool
}

// New constructs an empty naive forest over the given monoids.
func New[V comparable, E comparable](vMonoid rcforest.VertexMonoid[V], eMonoid rcforest.EdgeMonoid[E]) *Forest[V, E] {
	return &Forest[V, E]{vMonoid: vMonoid, eMonoid: eMonoid, modCount: 1}
}

var _ rcforest.Forest[int, int] = (*Forest[int, int])(nil)

func (f *Forest[V, E]) checkVertex(op string, v int) error {
	if v < 0 || v >= len(f.vertices) {
		return foresterr.New(op, foresterr.InvalidArgument, v)
	}
	return nil
}

func (f *Forest[V, E]) NVertices() int { return len(f.vertices) }
func (f *Forest[V, E]) NEdges() int    { return f.edgeCount }
func (f *Forest[V, E]) NRoots() int    { return f.NVertices() - f.NEdges() }

func (f *Forest[V, E]) NChildren(v int) (int, error) {
	if err := f.checkVertex("NChildren", v); err != nil {
		return 0, err
	}
	return len(f.vertices[v].children), nil
}

// GetParent returns vertex's parent, or vertex itself if it is a root.
func (f *Forest[V, E]) GetParent(v int) (int, error) {
	if err := f.checkVertex("GetParent", v); err != nil {
		return 0, err
	}
	return f.vertices[v].parent, nil
}

func (f *Forest[V, E]) IsRoot(v int) (bool, error) {
	if err := f.checkVertex("IsRoot", v); err != nil {
		return false, err
	}
	return f.vertices[v].parent == v, nil
}

func (f *Forest[V, E]) GetVertexInfo(v int) (V, error) {
	var zero V
	if err := f.checkVertex("GetVertexInfo", v); err != nil {
		return zero, err
	}
	return f.vertices[v].vInfo, nil
}

func (f *Forest[V, E]) GetEdgeInfoUpwards(v int) (E, error) {
	var zero E
	if err := f.checkVertex("GetEdgeInfoUpwards", v); err != nil {
		return zero, err
	}
	if f.vertices[v].parent == v {
		return zero, foresterr.New("GetEdgeInfoUpwards", foresterr.InvalidArgument, v)
	}
	return f.vertices[v].edgeUp, nil
}

func (f *Forest[V, E]) GetEdgeInfoDownwards(v int) (E, error) {
	var zero E
	if err := f.checkVertex("GetEdgeInfoDownwards", v); err != nil {
		return zero, err
	}
	if f.vertices[v].parent == v {
		return zero, foresterr.New("GetEdgeInfoDownwards", foresterr.InvalidArgument, v)
	}
	return f.vertices[v].edgeDown, nil
}

func (f *Forest[V, E]) GetRoot(v int) (int, error) {
	if err := f.checkVertex("GetRoot", v); err != nil {
		return 0, err
	}
	for f.vertices[v].parent != v {
		v = f.vertices[v].parent
	}
	return v, nil
}

func (f *Forest[V, E]) GetPath(first, last int) (E, error) {
	var zero E
	if err := f.checkVertex("GetPath", first); err != nil {
		return zero, err
	}
	if err := f.checkVertex("GetPath", last); err != nil {
		return zero, err
	}
	r1, err := f.GetRoot(first)
	if err != nil {
		return zero, err
	}
	r2, err := f.GetRoot(last)
	if err != nil {
		return zero, err
	}
	if r1 != r2 {
		return zero, foresterr.New("GetPath", foresterr.Disconnected, first, last)
	}

	depth := func(v int) int {
		d := 0
		for f.vertices[v].parent != v {
			d++
			v = f.vertices[v].parent
		}
		return d
	}
	d1, d2 := depth(first), depth(last)

	up, down := f.eMonoid.Neutral(), f.eMonoid.Neutral()
	for d1 > d2 {
		up = f.eMonoid.Sum(up, f.vertices[first].edgeUp)
		first = f.vertices[first].parent
		d1--
	}
	for d2 > d1 {
		down = f.eMonoid.Sum(f.vertices[last].edgeDown, down)
		last = f.vertices[last].parent
		d2--
	}
	for first != last {
		up = f.eMonoid.Sum(up, f.vertices[first].edgeUp)
		first = f.vertices[first].parent
		down = f.eMonoid.Sum(f.vertices[last].edgeDown, down)
		last = f.vertices[last].parent
	}
	return f.eMonoid.Sum(up, down), nil
}

func (f *Forest[V, E]) GetSubtree(v int) (V, error) {
	var zero V
	if err := f.checkVertex("GetSubtree", v); err != nil {
		return zero, err
	}
	return f.subtree(v), nil
}

func (f *Forest[V, E]) subtree(v int) V {
	rv := f.vertices[v].vInfo
	for _, c := range f.vertices[v].children {
		rv = f.vMonoid.Sum(rv, f.subtree(c))
	}
	return rv
}

// CreateVertex adds one new root vertex, taking effect immediately,
// matching the original's create_vertex (it never needs scheduling).
func (f *Forest[V, E]) CreateVertex(label V) int {
	idx := len(f.vertices)
	var zeroE E
	f.vertices = append(f.vertices, vertex[V, E]{
		parent:        idx,
		vInfo:         label,
		edgeUp:        zeroE,
		edgeDown:      zeroE,
		schedParent:   idx,
		schedVInfo:    label,
		schedEdgeUp:   zeroE,
		schedEdgeDown: zeroE,
		modCount:      0,
	})
	return idx
}

func (f *Forest[V, E]) ensureChanged(v int) {
	vx := &f.vertices[v]
	if vx.modCount != f.modCount {
		vx.modCount = f.modCount
		vx.schedParent = vx.parent
		vx.schedChildren = append([]int(nil), vx.children...)
		vx.schedVInfo = vx.vInfo
		vx.schedEdgeUp = vx.edgeUp
		vx.schedEdgeDown = vx.edgeDown
	}
}

func (f *Forest[V, E]) ScheduledIsChanged(v int) (bool, error) {
	if err := f.checkVertex("ScheduledIsChanged", v); err != nil {
		return false, err
	}
	return f.vertices[v].modCount == f.modCount, nil
}

func (f *Forest[V, E]) scheduledIsChanged(v int) bool {
	return f.vertices[v].modCount == f.modCount
}

// ScheduledGetParent returns vertex's pending parent, or vertex itself
// if it is a scheduled root.
func (f *Forest[V, E]) ScheduledGetParent(v int) (int, error) {
	if err := f.checkVertex("ScheduledGetParent", v); err != nil {
		return 0, err
	}
	p := f.vertices[v].parent
	if f.scheduledIsChanged(v) {
		p = f.vertices[v].schedParent
	}
	return p, nil
}

func (f *Forest[V, E]) ScheduledIsRoot(v int) (bool, error) {
	if err := f.checkVertex("ScheduledIsRoot", v); err != nil {
		return false, err
	}
	if f.scheduledIsChanged(v) {
		return f.vertices[v].schedParent == v, nil
	}
	return f.vertices[v].parent == v, nil
}

func (f *Forest[V, E]) ScheduledNEdges() int {
	if !f.hasScheduled {
		return f.edgeCount
	}
	n := 0
	for i := range f.vertices {
		p := f.vertices[i].parent
		if f.scheduledIsChanged(i) {
			p = f.vertices[i].schedParent
		}
		if p != i {
			n++
		}
	}
	return n
}

func (f *Forest[V, E]) ScheduledNRoots() int { return f.NVertices() - f.ScheduledNEdges() }

func (f *Forest[V, E]) ScheduledNChildren(v int) (int, error) {
	if err := f.checkVertex("ScheduledNChildren", v); err != nil {
		return 0, err
	}
	if f.scheduledIsChanged(v) {
		return len(f.vertices[v].schedChildren), nil
	}
	return len(f.vertices[v].children), nil
}

func (f *Forest[V, E]) ScheduledHasChanges() bool { return f.hasScheduled }

func (f *Forest[V, E]) ScheduledSetVertexInfo(v int, label V) error {
	if err := f.checkVertex("ScheduledSetVertexInfo", v); err != nil {
		return err
	}
	f.hasScheduled = true
	f.ensureChanged(v)
	f.vertices[v].schedVInfo = label
	return nil
}

func (f *Forest[V, E]) ScheduledSetEdgeInfo(v int, up, down E) error {
	if err := f.checkVertex("ScheduledSetEdgeInfo", v); err != nil {
		return err
	}
	f.hasScheduled = true
	f.ensureChanged(v)
	f.vertices[v].schedEdgeUp = up
	f.vertices[v].schedEdgeDown = down
	return nil
}

func (f *Forest[V, E]) ScheduledDetach(v int) error {
	if err := f.checkVertex("ScheduledDetach", v); err != nil {
		return err
	}
	f.hasScheduled = true
	f.ensureChanged(v)
	isRoot, _ := f.ScheduledIsRoot(v)
	if isRoot {
		return foresterr.New("ScheduledDetach", foresterr.InvalidArgument, v)
	}
	parent, _ := f.ScheduledGetParent(v)
	f.ensureChanged(parent)
	siblings := f.vertices[parent].schedChildren
	for i, c := range siblings {
		if c == v {
			f.vertices[parent].schedChildren = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	f.vertices[v].schedParent = v
	return nil
}

func (f *Forest[V, E]) ScheduledAttach(parent, child int, up, down E) error {
	if err := f.checkVertex("ScheduledAttach", parent); err != nil {
		return err
	}
	if err := f.checkVertex("ScheduledAttach", child); err != nil {
		return err
	}
	f.hasScheduled = true
	f.ensureChanged(parent)
	f.ensureChanged(child)
	isRoot, _ := f.ScheduledIsRoot(child)
	if !isRoot {
		return foresterr.New("ScheduledAttach", foresterr.InvalidArgument, parent, child)
	}
	vp := parent
	for {
		if vp == child {
			return foresterr.New("ScheduledAttach", foresterr.InvalidArgument, parent, child)
		}
		root, _ := f.ScheduledIsRoot(vp)
		if root {
			break
		}
		vp, _ = f.ScheduledGetParent(vp)
	}
	f.vertices[child].schedParent = parent
	f.vertices[child].schedEdgeUp = up
	f.vertices[child].schedEdgeDown = down
	f.vertices[parent].schedChildren = append(f.vertices[parent].schedChildren, child)
	return nil
}

func (f *Forest[V, E]) ScheduledApply() error {
	for i := range f.vertices {
		vx := &f.vertices[i]
		if vx.modCount == f.modCount {
			vx.parent = vx.schedParent
			vx.children = vx.schedChildren
			vx.vInfo = vx.schedVInfo
			vx.edgeUp = vx.schedEdgeUp
			vx.edgeDown = vx.schedEdgeDown
		}
	}
	edges := 0
	for i := range f.vertices {
		if f.vertices[i].parent != i {
			edges++
		}
	}
	f.edgeCount = edges
	f.hasScheduled = false
	f.modCount++
	return nil
}

func (f *Forest[V, E]) ScheduledCancel() {
	f.hasScheduled = false
	f.modCount++
}
