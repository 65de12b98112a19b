package contour

// Grid is the transparency channel of one oriented sprite variant, sampled as
// a width x height byte grid in row-major order.
type Grid struct {
	Width  int
	Height int
	Alpha  []byte
}

// NewGrid wraps raw alpha bytes. The slice is used as-is, not copied.
func NewGrid(width, height int, alpha []byte) Grid {
	return Grid{Width: width, Height: height, Alpha: alpha}
}

// valid reports whether the grid is large enough to march a 2x2 window over.
func (g Grid) valid() bool {
	return g.Width >= 2 && g.Height >= 2 && len(g.Alpha) >= g.Width*g.Height
}

// solid reports whether the sample at (x, y) exceeds the opacity threshold.
// Out-of-bounds samples are empty, which closes contours at the grid border.
func (g Grid) solid(x, y int, threshold uint8) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Alpha[y*g.Width+x] > threshold
}
