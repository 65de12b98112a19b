package shadows

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(Point{X: 1, Y: 2}, Point{X: 4, Y: 6}); math.Abs(d-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %f", d)
	}
	if d := Distance(Point{X: 3, Y: -1}, Point{X: 3, Y: -1}); d != 0 {
		t.Errorf("Expected zero distance, got %f", d)
	}
}

func TestIsFacingPoint(t *testing.T) {
	seg := Segment{A: Point{X: 0, Y: 0}, B: Point{X: 4, Y: 0}}

	if !IsFacingPoint(seg, Point{X: 2, Y: 2}) {
		t.Error("Expected the segment to face a point on its left side")
	}
	if IsFacingPoint(seg, Point{X: 2, Y: -2}) {
		t.Error("Expected the segment to face away from a point on its right side")
	}
	// Collinear points are not in front of the segment.
	if IsFacingPoint(seg, Point{X: 8, Y: 0}) {
		t.Error("Collinear point reported as facing")
	}

	// Reversing the segment flips the facing side.
	reversed := Segment{A: seg.B, B: seg.A}
	if IsFacingPoint(reversed, Point{X: 2, Y: 2}) {
		t.Error("Reversed segment still faces the same side")
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}

	if !PointInPolygon(Point{X: 2, Y: 2}, square) {
		t.Error("Center of the square reported outside")
	}
	if PointInPolygon(Point{X: 5, Y: 2}, square) {
		t.Error("Point beyond the right edge reported inside")
	}
	if PointInPolygon(Point{X: -1, Y: -1}, square) {
		t.Error("Point below the corner reported inside")
	}

	// Concave polygon: an L-shape with the notch at the top right.
	lShape := []Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2},
		{X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	}
	if !PointInPolygon(Point{X: 1, Y: 3}, lShape) {
		t.Error("Point in the leg of the L reported outside")
	}
	if PointInPolygon(Point{X: 3, Y: 3}, lShape) {
		t.Error("Point in the notch reported inside")
	}
}
