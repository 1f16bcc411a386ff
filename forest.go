// Package rcforest implements a dynamic rooted forest backed by
// randomized rake-and-compress contraction (an RC-forest), supporting
// batched attach/detach/relabel edits interleaved with path- and
// subtree-aggregate queries in expected polylogarithmic time.
//
// The public entry point is Forest, implemented by *RCForest (the
// contraction-backed structure) and by the naive reference forest in
// internal/naive (used as a correctness oracle in tests). The static
// builder in internal/builder constructs an *RCForest from a trusted,
// cycle-free edge list in one shot rather than implementing Forest
// itself.
package rcforest

import "github.com/rcforest/go-rcforest/internal/foresterr"

// Re-exported error taxonomy (see internal/foresterr for the full
// contract). Callers type-assert with errors.As(&*Error) or compare
// with errors.Is(err, rcforest.Disconnected) etc.
type (
	Kind  = foresterr.Kind
	Error = foresterr.Error
)

const (
	InvalidArgument   = foresterr.InvalidArgument
	Disconnected      = foresterr.Disconnected
	InternalInvariant = foresterr.InternalInvariant
)

// Forest is the abstract API shared by every rooted-dynamic-forest
// implementation in this module. Vertex indices are dense integers in
// [0, NVertices()).
type Forest[V comparable, E comparable] interface {
	// Access
	NVertices() int
	NEdges() int
	NRoots() int
	NChildren(vertex int) (int, error)
	GetParent(vertex int) (int, error)
	IsRoot(vertex int) (bool, error)
	GetVertexInfo(vertex int) (V, error)
	GetEdgeInfoUpwards(vertex int) (E, error)
	GetEdgeInfoDownwards(vertex int) (E, error)

	// Queries
	GetRoot(vertex int) (int, error)
	GetPath(first, last int) (E, error)
	GetSubtree(vertex int) (V, error)

	// Non-scheduled modification
	CreateVertex(label V) int

	// Scheduled modification
	ScheduledIsChanged(vertex int) (bool, error)
	ScheduledGetParent(vertex int) (int, error)
	ScheduledIsRoot(vertex int) (bool, error)
	ScheduledNEdges() int
	ScheduledNRoots() int
	ScheduledNChildren(vertex int) (int, error)
	ScheduledHasChanges() bool
	ScheduledSetVertexInfo(vertex int, label V) error
	ScheduledSetEdgeInfo(vertex int, up, down E) error
	ScheduledDetach(vertex int) error
	ScheduledAttach(parent, child int, up, down E) error
	ScheduledApply() error
	ScheduledCancel()
}
