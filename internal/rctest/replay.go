package rctest

import rcforest "github.com/rcforest/go-rcforest"

// OpKind distinguishes the two edits ReplayReverse knows how to invert.
type OpKind int

const (
	OpAttach OpKind = iota
	OpDetach
)

// Op is one edit a stress harness staged against a forest, recorded so
// ReplayReverse can later undo it. Vertex is the vertex the edit acts
// on; for OpAttach, Parent/Up/Down describe the new edge.
type Op[E comparable] struct {
	Kind   OpKind
	Vertex int
	Parent int
	Up     E
	Down   E
}

// PriorEdge is the state of vertex's incident edge immediately before
// an OpDetach was staged, needed to reconstruct the OpAttach that
// undoes it.
type PriorEdge[E comparable] struct {
	Parent int
	Up     E
	Down   E
}

// ReplayReverse stages, against f, the exact inverse of a batch
// described by ops (applied most-recent-first) and commits it with
// ScheduledApply. prior supplies the pre-batch parent/edge state for
// every vertex an OpDetach touched, since undoing a detach means
// re-attaching with its original edge labels. Running a batch forward
// and then its reverse should return the forest to its starting state.
func ReplayReverse[V comparable, E comparable](f rcforest.Forest[V, E], ops []Op[E], prior map[int]PriorEdge[E]) error {
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		switch op.Kind {
		case OpAttach:
			if err := f.ScheduledDetach(op.Vertex); err != nil {
				return err
			}
		case OpDetach:
			pe := prior[op.Vertex]
			if err := f.ScheduledAttach(pe.Parent, op.Vertex, pe.Up, pe.Down); err != nil {
				return err
			}
		}
	}
	return f.ScheduledApply()
}
