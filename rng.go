package rcforest

import (
	"crypto/rand"
	"encoding/binary"
)

// defaultSeed is generated once at process start and shared by every
// forest built with WithSeed unset, so such forests differ from one run
// of the process to the next, while a forest built with WithSeed is
// fully reproducible.
var defaultSeed = func() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0x9e3779b97f4a7c15
	}
	return binary.LittleEndian.Uint64(buf[:])
}()

// randomBit is a pure function of (seed, columnID, level), chosen over a
// stored, lazily-grown per-column bit vector because that storage scheme
// races when a parallel scheduled_apply grows two columns' bit vectors
// from different goroutines at once. A pure hash needs no storage at all
// and is trivially safe to call from any number of goroutines, while
// still satisfying the one property the contraction engine actually
// depends on: the same (column, level) pair always yields the same bit
// across repeated re-contractions.
//
// Every column has exactly one bit per level, looked up under whichever
// role a neighboring column's decision needs it in (its own, its
// parent's, its child's). This is what makes adjacent compress
// decisions mutually exclusive: a node's compress requires its
// parent's bit to be set, but that same parent's own compress requires
// its own bit to be clear, so the two can never both fire on the same
// level.
func randomBit(seed uint64, columnID int, level int) bool {
	h := seed
	h ^= uint64(columnID)*0x9e3779b97f4a7c15 + 0xbf58476d1ce4e5b9
	h = mix64(h)
	h ^= uint64(uint32(level))*0xff51afd7ed558ccd + 0xc2b2ae3d27d4eb4f
	h = mix64(h)
	return h&1 == 1
}

// priority derives the treap priority for a vertex's child-ternarization
// slot. It only needs to be a well-distributed value, not a single bit.
func priority(seed uint64, columnID int) uint64 {
	h := seed ^ uint64(columnID)*0x2545f4914f6cdd1d
	return mix64(h)
}

func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
