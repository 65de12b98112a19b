package shadows

import (
	"math"
	"testing"
)

func TestNoOccluderReturnsCircle(t *testing.T) {
	origin := Point{X: 10, Y: -4}
	radius := 7.5

	polygon := ComputeVisibilityPolygon(origin, radius, nil, 64, 256)

	if len(polygon) != circleSteps {
		t.Fatalf("Expected %d circle points, got %d", circleSteps, len(polygon))
	}
	for i, p := range polygon {
		if d := Distance(origin, p); math.Abs(d-radius) > 1e-9 {
			t.Errorf("Point %d at distance %f, expected %f", i, d, radius)
		}
	}
}

func TestPolygonSortedByAngle(t *testing.T) {
	segments := []Segment{
		{A: Point{X: 2, Y: -1}, B: Point{X: 2, Y: 1}},
		{A: Point{X: -3, Y: -2}, B: Point{X: -3, Y: 2}},
	}

	polygon := ComputeVisibilityPolygon(Point{}, 5, segments, 32, 128)
	if len(polygon) < 3 {
		t.Fatalf("Expected a polygon, got %d points", len(polygon))
	}

	prev := -1.0
	for i, p := range polygon {
		angle := math.Atan2(p.Y, p.X)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		if angle < prev-1e-12 {
			t.Fatalf("Polygon not monotonic in angle at point %d", i)
		}
		prev = angle
	}
}

func TestCornerExactness(t *testing.T) {
	origin := Point{}
	radius := 5.0
	segments := []Segment{
		{A: Point{X: 2, Y: -1}, B: Point{X: 2, Y: 1}},
	}

	polygon := ComputeVisibilityPolygon(origin, radius, segments, 32, 256)

	// Both segment endpoints must appear as polygon vertices.
	for _, corner := range []Point{{X: 2, Y: -1}, {X: 2, Y: 1}} {
		found := false
		for _, p := range polygon {
			if Distance(p, corner) < 1e-6 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Polygon missing corner vertex (%f, %f)", corner.X, corner.Y)
		}
	}

	// Rays inside the segment's angular span are clipped to it, rays
	// outside reach the full radius. Points within the vertex-offset
	// margin of the span boundary are skipped.
	spanLo := math.Atan2(-1, 2)
	spanHi := math.Atan2(1, 2)
	margin := 1e-3
	for _, p := range polygon {
		angle := math.Atan2(p.Y, p.X)
		dist := Distance(origin, p)
		switch {
		case angle > spanLo+margin && angle < spanHi-margin:
			if math.Abs(p.X-2) > 1e-9 {
				t.Errorf("Ray at angle %f not clipped to segment: (%f, %f)", angle, p.X, p.Y)
			}
		case angle < spanLo-margin || angle > spanHi+margin:
			if math.Abs(dist-radius) > 1e-9 {
				t.Errorf("Unobstructed ray at angle %f stopped at %f", angle, dist)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	segments := []Segment{
		{A: Point{X: 2, Y: -1}, B: Point{X: 2, Y: 1}},
		{A: Point{X: -1, Y: 3}, B: Point{X: 1, Y: 3}},
		{A: Point{X: -4, Y: -4}, B: Point{X: -4, Y: 0}},
	}

	first := ComputeVisibilityPolygon(Point{X: 0.5, Y: 0.25}, 10, segments, 48, 192)
	second := ComputeVisibilityPolygon(Point{X: 0.5, Y: 0.25}, 10, segments, 48, 192)

	if len(first) != len(second) {
		t.Fatalf("Vertex counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Vertex %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFilteredMatchesUnfiltered(t *testing.T) {
	segments := []Segment{
		{A: Point{X: 3, Y: -2}, B: Point{X: 3, Y: 2}},
		{A: Point{X: -2, Y: 4}, B: Point{X: 2, Y: 4}},
	}
	all := make([]int, len(segments))
	for i := range all {
		all[i] = i
	}
	filter := func(dx, dy float64) []int { return all }

	plain := ComputeVisibilityPolygon(Point{}, 8, segments, 32, 128)
	filtered := ComputeVisibilityPolygonFiltered(Point{}, 8, segments, filter, 32, 128)

	if len(plain) != len(filtered) {
		t.Fatalf("Vertex counts differ: %d vs %d", len(plain), len(filtered))
	}
	for i := range plain {
		if plain[i] != filtered[i] {
			t.Fatalf("Vertex %d differs: %+v vs %+v", i, plain[i], filtered[i])
		}
	}
}

func TestRaySegmentIntersection(t *testing.T) {
	seg := Segment{A: Point{X: 2, Y: -1}, B: Point{X: 2, Y: 1}}

	hit, dist, point := RaySegmentIntersection(Point{}, 1, 0, seg)
	if !hit {
		t.Fatal("Expected hit straight ahead")
	}
	if math.Abs(dist-2) > 1e-9 || math.Abs(point.X-2) > 1e-9 || math.Abs(point.Y) > 1e-9 {
		t.Errorf("Wrong intersection: dist=%f point=(%f, %f)", dist, point.X, point.Y)
	}

	// Ray pointing away.
	if hit, _, _ := RaySegmentIntersection(Point{}, -1, 0, seg); hit {
		t.Error("Expected no hit behind origin")
	}

	// Parallel ray.
	if hit, _, _ := RaySegmentIntersection(Point{}, 0, 1, seg); hit {
		t.Error("Expected parallel rejection")
	}

	// Degenerate zero-length segment rejects through the parallel test.
	degenerate := Segment{A: Point{X: 1, Y: 1}, B: Point{X: 1, Y: 1}}
	if hit, _, _ := RaySegmentIntersection(Point{}, 1, 1, degenerate); hit {
		t.Error("Expected degenerate segment to be inert")
	}
}
