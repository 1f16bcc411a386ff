package rcforest

import (
	"log/slog"

	"github.com/rcforest/go-rcforest/internal/foresterr"
	"github.com/rcforest/go-rcforest/internal/loopdrv"
	"github.com/rcforest/go-rcforest/internal/oracle"
	"github.com/rcforest/go-rcforest/internal/rclog"
)

type schedState int

const (
	schedClean schedState = iota
	schedDirty
	schedApplying
)

// scheduledOp records one edit queued by a Scheduled* call, in the
// order it was issued. ScheduledApply reports how many were queued as
// the batch size in its metrics and debug log; ScheduledCancel drops
// them.
type scheduledOp struct {
	kind   opKind
	vertex int
	parent int
}

type opKind int

const (
	opSetVertexInfo opKind = iota
	opSetEdgeInfo
	opDetach
	opAttach
)

// RCForest is a dynamic rooted forest backed by randomized
// rake-and-compress contraction. It implements Forest[V, E].
//
// Every query method (NVertices through GetSubtree) reads only
// committed state and never blocks on a pending batch. Edits always go
// through the Scheduled* family: stage as many as you like, then call
// ScheduledApply to commit them atomically or ScheduledCancel to drop
// them.
type RCForest[V comparable, E comparable] struct {
	vMonoid VertexMonoid[V]
	eMonoid EdgeMonoid[E]

	driver     loopdrv.Driver
	checker    oracle.Checker
	logger     *slog.Logger
	metrics    *Metrics
	seed       uint64
	debugTrace bool

	// Committed (live) topology. parent[v] == -1 means v is a root.
	parent   []int
	children [][]int
	vInfo    []V
	edgeUp   []E
	edgeDown []E
	nEdges   int

	// Derived, rebuilt by recompute() whenever committed topology
	// changes. subtreeAgg[v] is produced by the rake-and-compress
	// contraction in column.go; up/upJump/downJump/depth back GetPath's
	// binary-lifting walk in path.go.
	subtreeAgg []V
	up         [][]int
	upJump     [][]E
	downJump   [][]E
	depth      []int
	dirty      bool

	lastTrace []levelTrace

	// Shadow (scheduled) state, live only between the first Scheduled*
	// mutator after a commit and the next ScheduledApply/ScheduledCancel.
	state        schedState
	schedParent  []int
	schedVInfo   []V
	schedEdgeUp  []E
	schedEdgeDn  []E
	schedChanged []bool
	ops          []scheduledOp
}

// New constructs an empty forest. vMonoid and eMonoid must not be nil.
func New[V comparable, E comparable](vMonoid VertexMonoid[V], eMonoid EdgeMonoid[E], opts ...Option) *RCForest[V, E] {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = loopdrv.Sequential{}
	}
	if cfg.checker == nil {
		cfg.checker = oracle.DummyChecker{}
	}
	if cfg.logger == nil {
		cfg.logger = rclog.Default()
	}
	seed := defaultSeed
	if cfg.haveSeed {
		seed = cfg.seed
	}
	return &RCForest[V, E]{
		vMonoid:    vMonoid,
		eMonoid:    eMonoid,
		driver:     cfg.driver,
		checker:    cfg.checker,
		logger:     cfg.logger,
		metrics:    cfg.metrics,
		seed:       seed,
		debugTrace: cfg.debugTrace,
		state:      schedClean,
	}
}

var _ Forest[int, int] = (*RCForest[int, int])(nil)

func (f *RCForest[V, E]) checkVertex(op string, v int) error {
	if v < 0 || v >= len(f.parent) {
		return foresterr.New(op, foresterr.InvalidArgument, v)
	}
	return nil
}

// NVertices reports the number of vertices ever created, including
// ones pending a scheduled edit.
func (f *RCForest[V, E]) NVertices() int { return len(f.parent) }

// NEdges reports the number of committed parent-child edges.
func (f *RCForest[V, E]) NEdges() int { return f.nEdges }

// NRoots reports the number of committed trees in the forest.
func (f *RCForest[V, E]) NRoots() int {
	roots := 0
	for _, p := range f.parent {
		if p == -1 {
			roots++
		}
	}
	return roots
}

func (f *RCForest[V, E]) NChildren(v int) (int, error) {
	if err := f.checkVertex("NChildren", v); err != nil {
		return 0, err
	}
	return len(f.children[v]), nil
}

// GetParent returns vertex's parent, or vertex itself if it is a root:
// GetRoot is always a fixed point of GetParent.
func (f *RCForest[V, E]) GetParent(v int) (int, error) {
	if err := f.checkVertex("GetParent", v); err != nil {
		return 0, err
	}
	if f.parent[v] == -1 {
		return v, nil
	}
	return f.parent[v], nil
}

func (f *RCForest[V, E]) IsRoot(v int) (bool, error) {
	if err := f.checkVertex("IsRoot", v); err != nil {
		return false, err
	}
	return f.parent[v] == -1, nil
}

func (f *RCForest[V, E]) GetVertexInfo(v int) (V, error) {
	var zero V
	if err := f.checkVertex("GetVertexInfo", v); err != nil {
		return zero, err
	}
	return f.vInfo[v], nil
}

func (f *RCForest[V, E]) GetEdgeInfoUpwards(v int) (E, error) {
	var zero E
	if err := f.checkVertex("GetEdgeInfoUpwards", v); err != nil {
		return zero, err
	}
	if f.parent[v] == -1 {
		return zero, foresterr.New("GetEdgeInfoUpwards", foresterr.InvalidArgument, v)
	}
	return f.edgeUp[v], nil
}

func (f *RCForest[V, E]) GetEdgeInfoDownwards(v int) (E, error) {
	var zero E
	if err := f.checkVertex("GetEdgeInfoDownwards", v); err != nil {
		return zero, err
	}
	if f.parent[v] == -1 {
		return zero, foresterr.New("GetEdgeInfoDownwards", foresterr.InvalidArgument, v)
	}
	return f.edgeDown[v], nil
}

// GetRoot walks v to the root of its tree. This is a plain O(depth)
// walk, unlike GetPath (backed by the precomputed ancestor tables) and
// GetSubtree (backed by the precomputed contraction aggregates).
func (f *RCForest[V, E]) GetRoot(v int) (int, error) {
	if err := f.checkVertex("GetRoot", v); err != nil {
		return 0, err
	}
	for f.parent[v] != -1 {
		v = f.parent[v]
	}
	return v, nil
}

// CreateVertex adds one new root vertex labeled with label and returns
// its index. This is not a scheduled operation: it takes effect
// immediately, matching the original sources, where vertex creation
// never needs to run through the change scheduler because a freshly
// created vertex cannot yet participate in any edge.
func (f *RCForest[V, E]) CreateVertex(label V) int {
	v := len(f.parent)
	f.parent = append(f.parent, -1)
	f.children = append(f.children, nil)
	f.vInfo = append(f.vInfo, label)
	var zeroE E
	f.edgeUp = append(f.edgeUp, zeroE)
	f.edgeDown = append(f.edgeDown, zeroE)
	f.checker.CreateVertex()

	f.schedParent = append(f.schedParent, -1)
	f.schedVInfo = append(f.schedVInfo, label)
	f.schedEdgeUp = append(f.schedEdgeUp, zeroE)
	f.schedEdgeDn = append(f.schedEdgeDn, zeroE)
	f.schedChanged = append(f.schedChanged, false)

	f.dirty = true
	return v
}

// recompute rebuilds every derived query structure from the current
// committed topology: the rake-and-compress contraction (subtree
// aggregates) and the binary-lifting ancestor tables (path aggregates
// and LCA). ScheduledApply calls it eagerly so it can report level
// counts to the metrics and debug log; GetPath/GetSubtree call it
// lazily too, to cover the plain CreateVertex path, which commits
// immediately without going through the scheduler.
func (f *RCForest[V, E]) recompute() (int, error) {
	levels, err := f.buildContraction()
	if err != nil {
		return levels, err
	}
	f.buildAncestorTables()
	f.dirty = false
	return levels, nil
}
