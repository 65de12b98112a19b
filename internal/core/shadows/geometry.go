package shadows

import "math"

// Numerical tolerances for the ray/segment intersection solve.
const (
	// parallelEpsilon rejects near-parallel ray/segment pairs.
	parallelEpsilon = 1e-8
	// forwardEpsilon allows intersections a hair behind the ray origin.
	forwardEpsilon = 1e-6
	// spanEpsilon allows intersections a hair past either segment endpoint.
	spanEpsilon = 1e-6
)

// IsFacingPoint checks if a segment is facing towards a given point
// Uses cross product to determine if the point is on the "front" side of the segment
func IsFacingPoint(seg Segment, point Point) bool {
	dx1 := seg.B.X - seg.A.X
	dy1 := seg.B.Y - seg.A.Y
	dx2 := point.X - seg.A.X
	dy2 := point.Y - seg.A.Y

	cross := dx1*dy2 - dy1*dx2
	return cross > 0
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// RaySegmentIntersection intersects the ray origin + t*(dx,dy), t >= 0, with
// a line segment. Returns (hit, distance along the ray, intersection point).
// Degenerate zero-length segments fall out through the parallel rejection.
func RaySegmentIntersection(origin Point, dx, dy float64, seg Segment) (bool, float64, Point) {
	// Ray: P = origin + t * (dx, dy)
	// Segment: Q = seg.A + s * (seg.B - seg.A) for 0 <= s <= 1

	segDX := seg.B.X - seg.A.X
	segDY := seg.B.Y - seg.A.Y

	denominator := dx*segDY - dy*segDX
	if math.Abs(denominator) < parallelEpsilon {
		return false, 0, Point{}
	}

	diffX := seg.A.X - origin.X
	diffY := seg.A.Y - origin.Y

	t := (diffX*segDY - diffY*segDX) / denominator
	s := (dy*diffX - dx*diffY) / denominator

	if s < -spanEpsilon || s > 1+spanEpsilon || t < -forwardEpsilon {
		return false, 0, Point{}
	}
	if t < 0 {
		t = 0
	}

	return true, t, Point{
		X: origin.X + t*dx,
		Y: origin.Y + t*dy,
	}
}
