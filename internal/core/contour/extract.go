package contour

import "chosenoffset.com/penumbra/internal/core/shadows"

// ExtractSegments traces the boundary of all regions whose alpha exceeds the
// threshold and returns it as segments in the normalized 0..1 frame.
// tolerance is the Douglas-Peucker deviation bound, also in normalized units.
// Grids with no solid samples, and degenerate grids too small to march,
// yield an empty result.
func ExtractSegments(grid Grid, threshold uint8, tolerance float64) []shadows.Segment {
	if !grid.valid() {
		return nil
	}

	edges := marchEdges(grid, threshold)
	if len(edges) == 0 {
		return nil
	}

	scaleX := 1 / float64(grid.Width)
	scaleY := 1 / float64(grid.Height)

	var segments []shadows.Segment
	for _, chain := range chainEdges(edges) {
		closed := chain[0] == chain[len(chain)-1]

		normalized := make([]shadows.Point, len(chain))
		for i, p := range chain {
			normalized[i] = shadows.Point{X: p.X * scaleX, Y: p.Y * scaleY}
		}

		segments = appendChainSegments(segments, simplifyChain(normalized, tolerance), closed, tolerance)
	}
	return segments
}

// appendChainSegments converts a simplified chain into consecutive segments.
// For closed loops the chain start is an artifact of where edge chaining
// happened to begin; when it lies on the line between its neighbors it is
// removed so the loop closes through a real corner instead.
func appendChainSegments(segments []shadows.Segment, chain []shadows.Point, closed bool, tolerance float64) []shadows.Segment {
	if closed && len(chain) >= 4 {
		start := chain[0]
		if perpendicularDistance(start, chain[1], chain[len(chain)-2]) <= tolerance {
			ring := chain[1 : len(chain)-1]
			chain = append(ring, ring[0])
		}
	}

	for i := 0; i+1 < len(chain); i++ {
		if chain[i] == chain[i+1] {
			continue
		}
		segments = append(segments, shadows.Segment{A: chain[i], B: chain[i+1]})
	}
	return segments
}
