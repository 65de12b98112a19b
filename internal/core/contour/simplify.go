package contour

import (
	"math"

	"chosenoffset.com/penumbra/internal/core/shadows"
)

// perpendicularDistance is the distance from p to the infinite line through a
// and b, falling back to point distance when a and b coincide (which happens
// for closed chains, whose first and last points are equal).
func perpendicularDistance(p, a, b shadows.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return shadows.Distance(p, a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}

// simplifyChain reduces a polyline with recursive Douglas-Peucker: keep the
// farthest point from the endpoint line if it deviates more than the
// tolerance and recurse on both halves, otherwise collapse the chain to its
// two endpoints.
func simplifyChain(points []shadows.Point, tolerance float64) []shadows.Point {
	if len(points) <= 2 {
		return points
	}

	first := points[0]
	last := points[len(points)-1]
	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		if d := perpendicularDistance(points[i], first, last); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		return []shadows.Point{first, last}
	}

	left := simplifyChain(points[:maxIdx+1], tolerance)
	right := simplifyChain(points[maxIdx:], tolerance)

	// Drop the joint point duplicated between the two halves.
	result := make([]shadows.Point, 0, len(left)+len(right)-1)
	result = append(result, left...)
	result = append(result, right[1:]...)
	return result
}
