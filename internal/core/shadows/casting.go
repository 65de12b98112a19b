package shadows

import "math"

const (
	// circleSteps is the vertex count of the unobstructed fast-path circle.
	circleSteps = 32
	// edgeThresholdFraction flags an angular interval as a silhouette edge
	// when neighboring base-ray distances differ by more than this fraction
	// of the light radius.
	edgeThresholdFraction = 0.05
	// vertexAngleOffset brackets each obstruction corner with a ray just to
	// either side, so shadow boundaries snap to corners instead of being
	// interpolated across them.
	vertexAngleOffset = 1e-4
)

// CandidateFilter narrows the segment indices worth testing for a ray with
// direction (dx, dy). A nil filter tests every segment. Filters are a
// broad-phase only: they may return extra indices but must never omit a
// segment the ray could hit.
type CandidateFilter func(dx, dy float64) []int

// ComputeVisibilityPolygon calculates the lit region around a light at origin
// with the given radius, bounded by the occluding segments. Returns the
// polygon vertices ordered by angle; the last vertex connects back to the
// first. minRays is the uniform base sampling, maxRays bounds the total ray
// budget after silhouette refinement and corner injection.
func ComputeVisibilityPolygon(origin Point, radius float64, segments []Segment, minRays, maxRays int) []Point {
	return ComputeVisibilityPolygonFiltered(origin, radius, segments, nil, minRays, maxRays)
}

// ComputeVisibilityPolygonFiltered is ComputeVisibilityPolygon with a
// broad-phase candidate filter (usually backed by a spatial index). Output is
// identical to the unfiltered call for any well-formed filter.
func ComputeVisibilityPolygonFiltered(origin Point, radius float64, segments []Segment, filter CandidateFilter, minRays, maxRays int) []Point {
	if len(segments) == 0 {
		return boundaryCircle(origin, radius)
	}

	if minRays < 3 {
		minRays = 3
	}
	if maxRays < minRays {
		maxRays = minRays
	}

	// Base pass: uniform rays establish a coarse distance profile.
	step := 2 * math.Pi / float64(minRays)
	baseAngles := make([]float64, minRays)
	baseDists := make([]float64, minRays)
	for i := 0; i < minRays; i++ {
		baseAngles[i] = float64(i) * step
		baseDists[i], _ = castRay(origin, baseAngles[i], radius, segments, filter)
	}

	// Assemble the full angle set as a value pipeline, then cast once per
	// retained angle. Corner bearings are gathered first so the refinement
	// budget accounts for them; otherwise the downsampling safety valve
	// would routinely strip the exact-corner rays.
	vertexAngles := appendVertexAngles(nil, origin, radius, segments)
	refinementBudget := maxRays - minRays - len(vertexAngles)

	angles := make([]float64, 0, maxRays)
	angles = append(angles, baseAngles...)
	angles = appendRefinementAngles(angles, baseDists, radius, step, refinementBudget)
	angles = append(angles, vertexAngles...)
	angles = sortAndDedupeAngles(angles)
	angles = downsampleAngles(angles, maxRays)

	points := make([]Point, len(angles))
	for i, angle := range angles {
		_, points[i] = castRay(origin, angle, radius, segments, filter)
	}
	return points
}

// castRay finds the closest obstruction along the ray from origin at the
// given angle, clipped to radius when unobstructed.
func castRay(origin Point, angle, radius float64, segments []Segment, filter CandidateFilter) (float64, Point) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)

	closestDist := radius
	closestPoint := Point{
		X: origin.X + dx*radius,
		Y: origin.Y + dy*radius,
	}

	if filter != nil {
		for _, idx := range filter(dx, dy) {
			if hit, dist, point := RaySegmentIntersection(origin, dx, dy, segments[idx]); hit && dist < closestDist {
				closestDist = dist
				closestPoint = point
			}
		}
		return closestDist, closestPoint
	}

	for _, seg := range segments {
		if hit, dist, point := RaySegmentIntersection(origin, dx, dy, seg); hit && dist < closestDist {
			closestDist = dist
			closestPoint = point
		}
	}
	return closestDist, closestPoint
}

// boundaryCircle is the fast path when nothing occludes the light: a fixed
// low-resolution circle at the light radius.
func boundaryCircle(origin Point, radius float64) []Point {
	points := make([]Point, circleSteps)
	for i := 0; i < circleSteps; i++ {
		angle := float64(i) * 2 * math.Pi / circleSteps
		points[i] = Point{
			X: origin.X + math.Cos(angle)*radius,
			Y: origin.Y + math.Sin(angle)*radius,
		}
	}
	return points
}
