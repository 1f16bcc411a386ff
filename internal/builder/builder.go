// Package builder implements a static forest variant: a forest
// assembled once from a known edge list, with cycle rejection reduced
// to plain union-find instead of the full rake-and-compress machinery.
// It accumulates vertices and edges, rejecting anything that would
// close a cycle as it goes, then hands the accumulated edge list to a
// real contraction-backed forest as a single scheduled batch, since a
// forest built all at once from a trusted edge list never needs
// incremental cycle detection once it's handed off.
package builder

import (
	"fmt"

	rcforest "github.com/rcforest/go-rcforest"
	"github.com/rcforest/go-rcforest/internal/unionfind"
)

type pendingEdge[E comparable] struct {
	parent, child int
	up, down      E
}

// Builder accumulates vertices and edges, rejecting anything that
// would create a cycle or a double-parent before it is ever handed to
// the forest, then builds a *rcforest.RCForest in one shot.
type Builder[V comparable, E comparable] struct {
	labels  []V
	hasEdge []bool
	edges   []pendingEdge[E]
	dsu     unionfind.DSU
}

// AddVertex stages a new vertex and returns its index.
func (b *Builder[V, E]) AddVertex(label V) int {
	idx := len(b.labels)
	b.labels = append(b.labels, label)
	b.hasEdge = append(b.hasEdge, false)
	b.dsu.AddVertex()
	return idx
}

// AddEdge stages a parent-child edge. It rejects out-of-range
// vertices, a child that already has a parent, and an edge that would
// close a cycle, all via union-find rather than touching the forest.
func (b *Builder[V, E]) AddEdge(parent, child int, up, down E) error {
	if parent < 0 || parent >= len(b.labels) {
		return fmt.Errorf("builder: AddEdge: parent %d out of range", parent)
	}
	if child < 0 || child >= len(b.labels) {
		return fmt.Errorf("builder: AddEdge: child %d out of range", child)
	}
	if parent == child {
		return fmt.Errorf("builder: AddEdge: self-edge on %d", parent)
	}
	if b.hasEdge[child] {
		return fmt.Errorf("builder: AddEdge: vertex %d already has a parent", child)
	}
	if !b.dsu.Union(parent, child) {
		return fmt.Errorf("builder: AddEdge: %d -> %d would close a cycle", parent, child)
	}
	b.hasEdge[child] = true
	b.edges = append(b.edges, pendingEdge[E]{parent: parent, child: child, up: up, down: down})
	return nil
}

// Build constructs a fresh *rcforest.RCForest from every staged
// vertex and edge, replayed as a single scheduled batch. The returned
// forest owns no reference back to the builder. The builder keeps
// everything it has staged, so a later Build replays those vertices and
// edges again along with anything added since.
func Build[V comparable, E comparable](b *Builder[V, E], vMonoid rcforest.VertexMonoid[V], eMonoid rcforest.EdgeMonoid[E], opts ...rcforest.Option) (*rcforest.RCForest[V, E], error) {
	f := rcforest.New(vMonoid, eMonoid, opts...)
	ids := make([]int, len(b.labels))
	for i, label := range b.labels {
		ids[i] = f.CreateVertex(label)
	}
	for _, e := range b.edges {
		if err := f.ScheduledAttach(ids[e.parent], ids[e.child], e.up, e.down); err != nil {
			f.ScheduledCancel()
			return nil, fmt.Errorf("builder: Build: %w", err)
		}
	}
	if err := f.ScheduledApply(); err != nil {
		return nil, fmt.Errorf("builder: Build: %w", err)
	}
	return f, nil
}
