package contour

import (
	"math"
	"testing"

	"chosenoffset.com/penumbra/internal/core/shadows"
)

func opaqueGrid(w, h int) Grid {
	alpha := make([]byte, w*h)
	for i := range alpha {
		alpha[i] = 255
	}
	return NewGrid(w, h, alpha)
}

func TestRectangleRoundTrip(t *testing.T) {
	grid := opaqueGrid(4, 4)

	segments := ExtractSegments(grid, 0, 0)
	if len(segments) != 4 {
		t.Fatalf("Expected 4 boundary segments, got %d: %v", len(segments), segments)
	}

	// Every endpoint sits half a sample outside the unit square on both
	// axes, i.e. at -0.5/4 or (4-0.5)/4.
	lo, hi := -0.5/4.0, 3.5/4.0
	for i, seg := range segments {
		for _, p := range []shadows.Point{seg.A, seg.B} {
			xOK := math.Abs(p.X-lo) < 1e-12 || math.Abs(p.X-hi) < 1e-12
			yOK := math.Abs(p.Y-lo) < 1e-12 || math.Abs(p.Y-hi) < 1e-12
			if !xOK || !yOK {
				t.Errorf("Segment %d endpoint (%f, %f) not on boundary rectangle", i, p.X, p.Y)
			}
		}
	}

	// The four segments must close into a loop: each endpoint appears
	// exactly twice.
	counts := make(map[shadows.Point]int)
	for _, seg := range segments {
		counts[seg.A]++
		counts[seg.B]++
	}
	if len(counts) != 4 {
		t.Fatalf("Expected 4 distinct corners, got %d", len(counts))
	}
	for p, n := range counts {
		if n != 2 {
			t.Errorf("Corner (%f, %f) appears %d times, expected 2", p.X, p.Y, n)
		}
	}
}

func TestEmptyGridYieldsNothing(t *testing.T) {
	grid := NewGrid(8, 8, make([]byte, 64))
	if segments := ExtractSegments(grid, 0, 0); len(segments) != 0 {
		t.Errorf("Expected no segments for transparent grid, got %d", len(segments))
	}
}

func TestDegenerateGridsYieldNothing(t *testing.T) {
	cases := []Grid{
		NewGrid(1, 1, []byte{255}),
		NewGrid(0, 0, nil),
		NewGrid(4, 4, []byte{255}), // malformed: too few samples
	}
	for i, grid := range cases {
		if segments := ExtractSegments(grid, 0, 0); len(segments) != 0 {
			t.Errorf("Case %d: expected no segments, got %d", i, len(segments))
		}
	}
}

func TestThresholdBinarization(t *testing.T) {
	grid := opaqueGrid(4, 4)
	for i := range grid.Alpha {
		grid.Alpha[i] = 100
	}

	if segments := ExtractSegments(grid, 100, 0); len(segments) != 0 {
		t.Error("Alpha equal to threshold should not be solid")
	}
	if segments := ExtractSegments(grid, 99, 0); len(segments) == 0 {
		t.Error("Alpha above threshold should be solid")
	}
}

// blobGrid draws a rough disc, which produces a many-pointed contour that
// simplification can progressively reduce.
func blobGrid(size int) Grid {
	grid := NewGrid(size, size, make([]byte, size*size))
	c := float64(size-1) / 2
	r := float64(size) / 2.5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - c
			dy := float64(y) - c
			if dx*dx+dy*dy <= r*r {
				grid.Alpha[y*size+x] = 255
			}
		}
	}
	return grid
}

func TestSimplificationMonotonicity(t *testing.T) {
	grid := blobGrid(24)

	prev := math.MaxInt
	for _, tolerance := range []float64{0, 0.01, 0.05, 0.1, 0.5} {
		count := len(ExtractSegments(grid, 0, tolerance))
		if count > prev {
			t.Errorf("Tolerance %f produced %d segments, more than %d at the smaller tolerance", tolerance, count, prev)
		}
		prev = count
	}
}

// countComponents chains segments by shared endpoints and counts the
// resulting connected groups.
func countComponents(segments []shadows.Segment) int {
	parent := make(map[shadows.Point]shadows.Point)
	var find func(p shadows.Point) shadows.Point
	find = func(p shadows.Point) shadows.Point {
		if parent[p] == p {
			return p
		}
		root := find(parent[p])
		parent[p] = root
		return root
	}
	for _, seg := range segments {
		for _, p := range []shadows.Point{seg.A, seg.B} {
			if _, ok := parent[p]; !ok {
				parent[p] = p
			}
		}
		parent[find(seg.A)] = find(seg.B)
	}
	roots := make(map[shadows.Point]bool)
	for p := range parent {
		roots[find(p)] = true
	}
	return len(roots)
}

func TestSaddleFixedSplitKeepsDiagonalsApart(t *testing.T) {
	// Two solid samples touching only diagonally. The fixed saddle split
	// traces them as two separate contours rather than joining them.
	grid := NewGrid(2, 2, []byte{255, 0, 0, 255})

	segments := ExtractSegments(grid, 0, 0)
	if len(segments) == 0 {
		t.Fatal("Expected contours for diagonal pattern")
	}
	if components := countComponents(segments); components != 2 {
		t.Errorf("Expected 2 separate contours, got %d", components)
	}
}

type countingSampler struct {
	calls int
	grid  Grid
}

func (s *countingSampler) SampleAlphaGrid(spriteID string, rotation int, mirrorX, mirrorY bool) Grid {
	s.calls++
	return s.grid
}

func TestCacheMemoizes(t *testing.T) {
	sampler := &countingSampler{grid: opaqueGrid(4, 4)}
	cache := NewCache(sampler)
	key := Key{SpriteID: "crate", Threshold: 10, Tolerance: 0.01}

	first := cache.Extract(key)
	second := cache.Extract(key)
	if sampler.calls != 1 {
		t.Errorf("Expected 1 sampler call, got %d", sampler.calls)
	}
	if len(first) != len(second) {
		t.Errorf("Cached result differs: %d vs %d segments", len(first), len(second))
	}

	// A different orientation is a different key.
	cache.Extract(Key{SpriteID: "crate", Rotation: 1, Threshold: 10, Tolerance: 0.01})
	if sampler.calls != 2 {
		t.Errorf("Expected 2 sampler calls after new key, got %d", sampler.calls)
	}

	cache.Invalidate()
	cache.Extract(key)
	if sampler.calls != 3 {
		t.Errorf("Expected recomputation after invalidate, got %d calls", sampler.calls)
	}
}

func TestCacheEmptyGridContour(t *testing.T) {
	sampler := &countingSampler{} // zero grid: sprite contributes nothing
	cache := NewCache(sampler)

	if segments := cache.Extract(Key{SpriteID: "ghost"}); len(segments) != 0 {
		t.Errorf("Expected empty contour, got %d segments", len(segments))
	}
	// The empty result is memoized too.
	cache.Extract(Key{SpriteID: "ghost"})
	if sampler.calls != 1 {
		t.Errorf("Expected memoized empty result, got %d calls", sampler.calls)
	}
}
