package rctest

import (
	"testing"

	rcforest "github.com/rcforest/go-rcforest"
)

// buildChain attaches size-1 edges into one straight line 0->1->...->size-1.
func buildChain(b *testing.B, size int) *rcforest.RCForest[int, int] {
	f := rcforest.New[int, int](IntSum{}, IntAdd{})
	for i := 0; i < size; i++ {
		f.CreateVertex(1)
	}
	for i := 1; i < size; i++ {
		if err := f.ScheduledAttach(i-1, i, 1, 1); err != nil {
			b.Fatal(err)
		}
	}
	if err := f.ScheduledApply(); err != nil {
		b.Fatal(err)
	}
	return f
}

// buildStar attaches every other vertex directly to vertex 0.
func buildStar(b *testing.B, size int) *rcforest.RCForest[int, int] {
	f := rcforest.New[int, int](IntSum{}, IntAdd{})
	for i := 0; i < size; i++ {
		f.CreateVertex(1)
	}
	for i := 1; i < size; i++ {
		if err := f.ScheduledAttach(0, i, 1, 1); err != nil {
			b.Fatal(err)
		}
	}
	if err := f.ScheduledApply(); err != nil {
		b.Fatal(err)
	}
	return f
}

// buildTwoStars builds two disjoint large-degree stars and then joins
// their centers, matching two_large_degrees from the original timing
// harness.
func buildTwoStars(b *testing.B, size int) *rcforest.RCForest[int, int] {
	size &^= 1
	f := rcforest.New[int, int](IntSum{}, IntAdd{})
	for i := 0; i < size; i++ {
		f.CreateVertex(1)
	}
	half := size / 2
	for i := 1; i < half; i++ {
		if err := f.ScheduledAttach(0, i, 1, 1); err != nil {
			b.Fatal(err)
		}
		if err := f.ScheduledAttach(half, half+i, 2, 2); err != nil {
			b.Fatal(err)
		}
	}
	if err := f.ScheduledAttach(0, half, 3, 3); err != nil {
		b.Fatal(err)
	}
	if err := f.ScheduledApply(); err != nil {
		b.Fatal(err)
	}
	return f
}

func probe(size, i int) (int, int) {
	src := ((i*3214+9132)%size + size) % size
	dst := ((i*26466+913532)%size + size) % size
	return src, dst
}

func queryMix(b *testing.B, f *rcforest.RCForest[int, int], size int) {
	for i := 0; i < b.N; i++ {
		src, dst := probe(size, i)
		if _, err := f.GetPath(src, dst); err != nil {
			b.Fatal(err)
		}
		if _, err := f.GetSubtree(src % size); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLongChain(b *testing.B) {
	const size = 1 << 16
	f := buildChain(b, size)
	b.ResetTimer()
	queryMix(b, f, size)
}

func BenchmarkLargeDegreeStar(b *testing.B) {
	const size = 1 << 16
	f := buildStar(b, size)
	b.ResetTimer()
	queryMix(b, f, size)
}

func BenchmarkTwoStarsJoined(b *testing.B) {
	const size = 1 << 16
	f := buildTwoStars(b, size)
	b.ResetTimer()
	queryMix(b, f, size)
}

// BenchmarkLongChainWithSubtreeCache repeats the long-chain query mix
// through a SubtreeCache instead of calling GetSubtree directly, so a
// regression that lets a cached aggregate go stale without invalidation
// shows up as a cache mismatch rather than silently passing. Each
// vertex also gets a label purely so a mismatch failure can name which
// vertex diverged without relying on its numeric index.
func BenchmarkLongChainWithSubtreeCache(b *testing.B) {
	const size = 1 << 14
	f := buildChain(b, size)
	labels := NewLabels(size)
	cache, err := NewSubtreeCache[int, int](f, 256)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src, _ := probe(size, i)
		_, mismatch, err := cache.Get(src)
		if err != nil {
			b.Fatal(err)
		}
		if mismatch {
			b.Fatalf("subtree cache mismatch for vertex %d (label %s)", src, labels[src])
		}
	}
}

// BenchmarkIncrementalChainGrowth grows one long chain in ten rounds,
// timing each round's ScheduledApply, matching incremental_long_chain
// from the original timing harness — the shape that stresses
// incremental re-contraction rather than a single cold build.
func BenchmarkIncrementalChainGrowth(b *testing.B) {
	const size = 1 << 14
	const rounds = 10
	roundSize := size / rounds
	for i := 0; i < b.N; i++ {
		f := rcforest.New[int, int](IntSum{}, IntAdd{})
		for round := 0; round < rounds; round++ {
			previous := f.NVertices()
			for j := 0; j < roundSize; j++ {
				f.CreateVertex(1)
			}
			for j := 1; j < roundSize; j++ {
				if err := f.ScheduledAttach(j-1+previous, j+previous, 1, 1); err != nil {
					b.Fatal(err)
				}
			}
			if previous > 0 {
				if err := f.ScheduledAttach(previous-1, previous, 1, 1); err != nil {
					b.Fatal(err)
				}
			}
			if err := f.ScheduledApply(); err != nil {
				b.Fatal(err)
			}
		}
	}
}
