package rctest

import "github.com/google/uuid"

// Label is an opaque per-vertex identifier for stress and benchmark
// fixtures that don't care what a vertex "means," only that every
// vertex is distinguishable, so a fixture accidentally relying on
// vertex index order shows up as a flaky test instead of passing by
// accident.
type Label = uuid.UUID

// NewLabel returns a fresh random label.
func NewLabel() Label { return uuid.New() }

// NewLabels returns n fresh random labels.
func NewLabels(n int) []Label {
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = uuid.New()
	}
	return labels
}
