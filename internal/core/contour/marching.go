package contour

import "chosenoffset.com/penumbra/internal/core/shadows"

// Marching squares over the binarized alpha grid.
//
// Each 2x2 sample window forms a cell; the 4-bit case is
// top-left<<3 | top-right<<2 | bottom-right<<1 | bottom-left. Boundary edges
// run between midpoints of the cell's sides. Cells with a single solid (or
// single empty) corner route through the cell center so that axis-aligned
// sprite edges come out as straight runs instead of stair-step chamfers.
// The two saddle cases (5 and 10, diagonally solid) use one fixed split that
// keeps the diagonal corners disconnected; thin diagonal features can be
// misclassified by this, which is accepted behavior.

// Cell-relative edge endpoint ids.
const (
	ptTop = iota
	ptRight
	ptBottom
	ptLeft
	ptCenter
)

// caseTable maps each marching-squares case to the polylines (as endpoint id
// sequences) tracing the boundary through that cell. Cases 0 and 15 are empty.
var caseTable = [16][][]int{
	0:  {},
	1:  {{ptLeft, ptCenter, ptBottom}},
	2:  {{ptBottom, ptCenter, ptRight}},
	3:  {{ptLeft, ptRight}},
	4:  {{ptTop, ptCenter, ptRight}},
	5:  {{ptTop, ptRight}, {ptLeft, ptBottom}}, // saddle, fixed split
	6:  {{ptTop, ptBottom}},
	7:  {{ptLeft, ptCenter, ptTop}},
	8:  {{ptTop, ptCenter, ptLeft}},
	9:  {{ptTop, ptBottom}},
	10: {{ptTop, ptLeft}, {ptBottom, ptRight}}, // saddle, fixed split
	11: {{ptTop, ptCenter, ptRight}},
	12: {{ptLeft, ptRight}},
	13: {{ptBottom, ptCenter, ptRight}},
	14: {{ptLeft, ptCenter, ptBottom}},
	15: {},
}

// cellPoint resolves an endpoint id for the cell whose top-left sample is
// (x, y). Coordinates stay in sample space; exact half-integer values let
// shared endpoints between neighboring cells compare equal.
func cellPoint(x, y, id int) shadows.Point {
	fx, fy := float64(x), float64(y)
	switch id {
	case ptTop:
		return shadows.Point{X: fx + 0.5, Y: fy}
	case ptRight:
		return shadows.Point{X: fx + 1, Y: fy + 0.5}
	case ptBottom:
		return shadows.Point{X: fx + 0.5, Y: fy + 1}
	case ptLeft:
		return shadows.Point{X: fx, Y: fy + 0.5}
	default:
		return shadows.Point{X: fx + 0.5, Y: fy + 0.5}
	}
}

// marchEdges walks a 2x2 window across the grid (including a one-sample ring
// outside it, so contours close at the border) and collects the unordered
// boundary edge soup.
func marchEdges(grid Grid, threshold uint8) []shadows.Segment {
	var edges []shadows.Segment

	for y := -1; y < grid.Height; y++ {
		for x := -1; x < grid.Width; x++ {
			caseIndex := 0
			if grid.solid(x, y, threshold) {
				caseIndex |= 8
			}
			if grid.solid(x+1, y, threshold) {
				caseIndex |= 4
			}
			if grid.solid(x+1, y+1, threshold) {
				caseIndex |= 2
			}
			if grid.solid(x, y+1, threshold) {
				caseIndex |= 1
			}

			for _, polyline := range caseTable[caseIndex] {
				for i := 0; i+1 < len(polyline); i++ {
					edges = append(edges, shadows.Segment{
						A: cellPoint(x, y, polyline[i]),
						B: cellPoint(x, y, polyline[i+1]),
					})
				}
			}
		}
	}

	return edges
}

// chainEdges links the unordered edge soup into polylines: pick an unused
// edge, then greedily extend both ends through edges sharing an endpoint.
// Endpoint coordinates are exact half-integers so direct equality works as
// the coordinate epsilon. A chain whose ends meet is a closed loop (first
// point equals last point).
func chainEdges(edges []shadows.Segment) [][]shadows.Point {
	adjacency := make(map[shadows.Point][]int, len(edges)*2)
	for i, edge := range edges {
		adjacency[edge.A] = append(adjacency[edge.A], i)
		adjacency[edge.B] = append(adjacency[edge.B], i)
	}

	used := make([]bool, len(edges))
	var chains [][]shadows.Point

	takeContinuation := func(at shadows.Point) (shadows.Point, bool) {
		for _, idx := range adjacency[at] {
			if used[idx] {
				continue
			}
			used[idx] = true
			if edges[idx].A == at {
				return edges[idx].B, true
			}
			return edges[idx].A, true
		}
		return shadows.Point{}, false
	}

	for i := range edges {
		if used[i] {
			continue
		}
		used[i] = true

		chain := []shadows.Point{edges[i].A, edges[i].B}
		for {
			next, ok := takeContinuation(chain[len(chain)-1])
			if !ok {
				break
			}
			chain = append(chain, next)
		}
		for {
			prev, ok := takeContinuation(chain[0])
			if !ok {
				break
			}
			chain = append([]shadows.Point{prev}, chain...)
		}

		if len(chain) >= 2 {
			chains = append(chains, chain)
		}
	}

	return chains
}
