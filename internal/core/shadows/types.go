package shadows

// Point represents a 2D point in space
type Point struct {
	X, Y float64
}

// Segment represents an occluding edge that can cast shadows.
// Endpoints are frame-agnostic: contour extraction produces segments in the
// normalized unit square, the occluder builder produces them in world space.
// The two frames must never be mixed in one slice.
type Segment struct {
	A, B Point
}
