// Package oracle provides the loop-prevention side oracle consumed by
// the forest scheduler. It answers connectivity queries under a batched
// sequence of link/cut edits with an undo log, so a scheduled batch of
// attaches and detaches can be cancelled without leaving the oracle out
// of sync with the forest.
//
// This is deliberately kept independent of the RC-forest's own
// contraction machinery: the forest only ever calls the six methods of
// Checker, never reaches into a link-cut tree's splay internals.
package oracle

// Checker is the capability bundle the scheduler depends on. A
// DummyChecker satisfies it trivially for callers that guarantee their
// own edits never introduce a cycle; a LinkCutTree gives real
// connectivity testing with O(log n) amortized operations.
type Checker interface {
	CreateVertex()
	Link(v1, v2 int)
	Cut(v1, v2 int)
	TestConnectivity(v1, v2 int) bool
	Unroll()
	Flush()
}

// DummyChecker always reports "not connected" and performs no
// bookkeeping. It is enough when the client guarantees non-cyclic
// edits itself (e.g. the static Builder, which rejects cycles with its
// own union-find before any vertex ever reaches the forest).
type DummyChecker struct{}

func (DummyChecker) CreateVertex()                {}
func (DummyChecker) Link(v1, v2 int)              {}
func (DummyChecker) Cut(v1, v2 int)               {}
func (DummyChecker) TestConnectivity(v1, v2 int) bool { return false }
func (DummyChecker) Unroll()                      {}
func (DummyChecker) Flush()                       {}

var _ Checker = DummyChecker{}
