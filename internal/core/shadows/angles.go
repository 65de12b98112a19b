package shadows

import (
	"math"
	"sort"
)

// angleDedupeEpsilon collapses candidate angles that are effectively equal.
// Small enough that the ±vertexAngleOffset brackets around corners survive.
const angleDedupeEpsilon = 1e-9

// appendRefinementAngles detects silhouette edges in the base distance
// profile and spends the refinement budget on extra rays interpolated across
// the flagged intervals. baseDists[i] is the cast distance of the uniform ray
// at angle i*step.
func appendRefinementAngles(angles []float64, baseDists []float64, radius, step float64, budget int) []float64 {
	if budget <= 0 || len(baseDists) < 2 {
		return angles
	}

	threshold := edgeThresholdFraction * radius
	var flagged []int
	for i := range baseDists {
		next := baseDists[(i+1)%len(baseDists)]
		if math.Abs(baseDists[i]-next) > threshold {
			flagged = append(flagged, i)
		}
	}
	if len(flagged) == 0 {
		return angles
	}

	perEdge := budget / len(flagged)
	if perEdge < 1 {
		perEdge = 1
	}
	for _, i := range flagged {
		lo := float64(i) * step
		for j := 1; j <= perEdge; j++ {
			angles = append(angles, lo+step*float64(j)/float64(perEdge+1))
		}
	}
	return angles
}

// appendVertexAngles injects the exact bearing of every segment endpoint
// within radius of the origin, bracketed by a tiny offset on either side.
// The bracket rays land just past the corner, which is what pins shadow
// boundaries to obstruction corners.
func appendVertexAngles(angles []float64, origin Point, radius float64, segments []Segment) []float64 {
	for _, seg := range segments {
		for _, vertex := range [2]Point{seg.A, seg.B} {
			dx := vertex.X - origin.X
			dy := vertex.Y - origin.Y
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			angle := math.Atan2(dy, dx)
			angles = append(angles,
				angle-vertexAngleOffset,
				angle,
				angle+vertexAngleOffset,
			)
		}
	}
	return angles
}

// sortAndDedupeAngles normalizes every angle to [0, 2π), sorts, and drops
// near-duplicates. Sorting makes the output polygon monotonic in angle and
// keeps the whole pipeline independent of input traversal order.
func sortAndDedupeAngles(angles []float64) []float64 {
	for i, angle := range angles {
		normalized := math.Mod(angle, 2*math.Pi)
		if normalized < 0 {
			normalized += 2 * math.Pi
		}
		angles[i] = normalized
	}
	sort.Float64s(angles)

	deduped := angles[:0]
	for i, angle := range angles {
		if i == 0 || angle-deduped[len(deduped)-1] > angleDedupeEpsilon {
			deduped = append(deduped, angle)
		}
	}
	return deduped
}

// downsampleAngles uniformly strides the sorted angle set down to the budget
// when refinement and corner injection overshoot it.
func downsampleAngles(angles []float64, budget int) []float64 {
	if budget <= 0 || len(angles) <= budget {
		return angles
	}
	sampled := make([]float64, 0, budget)
	for i := 0; i < budget; i++ {
		sampled = append(sampled, angles[i*len(angles)/budget])
	}
	return sampled
}
