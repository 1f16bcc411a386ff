// Package rctest collects the shared test fixtures used by the forest
// facade's own tests and by any future consumer that wants to stress
// its own monoid against a known-good differential oracle: example
// monoids, a reverse-batch replay helper, and timing-harness benchmark
// shapes.
package rctest

// IntSum is a trivial commutative vertex monoid over int, used by the
// simplest property tests and benchmarks.
type IntSum struct{}

func (IntSum) Neutral() int     { return 0 }
func (IntSum) Sum(a, b int) int { return a + b }

// IntAdd is a trivial edge monoid over int, used by benchmarks that
// don't need a non-commutative monoid to exercise anything interesting.
type IntAdd struct{}

func (IntAdd) Neutral() int     { return 0 }
func (IntAdd) Sum(a, b int) int { return a + b }

// IntMatrix2 is a 2x2 integer matrix under multiplication, used as a
// deliberately non-commutative edge monoid: matrix multiplication does
// not commute, so it exercises GetPath's up/down composition-order
// split in a way a commutative monoid like IntAdd never can. Matrices
// are stored row-major: {a, b, c, d} means [[a, b], [c, d]].
type IntMatrix2 struct {
	A, B, C, D int
}

func (IntMatrix2) Neutral() IntMatrix2 {
	return IntMatrix2{A: 1, B: 0, C: 0, D: 1}
}

// Sum returns a*b in matrix-multiplication order: the edges nearer the
// path's start must be passed as a.
func (IntMatrix2) Sum(a, b IntMatrix2) IntMatrix2 {
	return IntMatrix2{
		A: a.A*b.A + a.B*b.C,
		B: a.A*b.B + a.B*b.D,
		C: a.C*b.A + a.D*b.C,
		D: a.C*b.B + a.D*b.D,
	}
}
