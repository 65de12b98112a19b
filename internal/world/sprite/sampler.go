// Package sprite adapts image assets into the alpha grids the contour
// extractor samples. Orientation (quadrant rotation plus mirroring) is
// applied here so the extractor and its cache only ever see final variants.
package sprite

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"chosenoffset.com/penumbra/internal/core/contour"
)

// DefaultMaxSampleSize caps the sampling resolution per axis. Contours only
// need enough detail to silhouette a sprite; full-resolution art just slows
// extraction down.
const DefaultMaxSampleSize = 64

// ImageSampler implements contour.Sampler over registered image assets.
// Unknown sprite IDs yield an empty grid, which the pipeline treats as
// "contributes no occluding geometry".
type ImageSampler struct {
	images  map[string]image.Image
	maxSize int
}

// NewImageSampler creates a sampler. maxSize <= 0 selects
// DefaultMaxSampleSize.
func NewImageSampler(maxSize int) *ImageSampler {
	if maxSize <= 0 {
		maxSize = DefaultMaxSampleSize
	}
	return &ImageSampler{
		images:  make(map[string]image.Image),
		maxSize: maxSize,
	}
}

// Register associates a sprite ID with its image asset, replacing any
// previous registration. Callers should invalidate contour caches after
// re-registering live assets.
func (s *ImageSampler) Register(id string, img image.Image) {
	s.images[id] = img
}

// SampleAlphaGrid rasterizes the transparency channel of one oriented sprite
// variant. Mirroring happens in the sprite's own frame, then the quadrant
// rotation is applied.
func (s *ImageSampler) SampleAlphaGrid(spriteID string, rotation int, mirrorX, mirrorY bool) contour.Grid {
	img, ok := s.images[spriteID]
	if !ok || img == nil {
		return contour.Grid{}
	}

	alpha := s.alphaGrid(img)
	if alpha.Width == 0 || alpha.Height == 0 {
		return contour.Grid{}
	}
	return orientGrid(alpha, rotation&3, mirrorX, mirrorY)
}

// alphaGrid extracts the alpha channel, downsampling to the sampling
// resolution when the asset is larger.
func (s *ImageSampler) alphaGrid(img image.Image) contour.Grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return contour.Grid{}
	}

	if w > s.maxSize || h > s.maxSize {
		scale := float64(s.maxSize) / float64(w)
		if vs := float64(s.maxSize) / float64(h); vs < scale {
			scale = vs
		}
		sw := int(float64(w) * scale)
		sh := int(float64(h) * scale)
		if sw < 2 {
			sw = 2
		}
		if sh < 2 {
			sh = 2
		}
		scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)
		img = scaled
		bounds = scaled.Bounds()
		w, h = sw, sh
	}

	grid := contour.NewGrid(w, h, make([]byte, w*h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			grid.Alpha[y*w+x] = byte(a >> 8)
		}
	}
	return grid
}

// orientGrid produces the oriented variant of an upright alpha grid. Odd
// quadrants swap the output dimensions.
func orientGrid(src contour.Grid, rotation int, mirrorX, mirrorY bool) contour.Grid {
	w, h := src.Width, src.Height
	outW, outH := w, h
	if rotation%2 != 0 {
		outW, outH = h, w
	}

	out := contour.NewGrid(outW, outH, make([]byte, outW*outH))
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var sx, sy int
			switch rotation {
			case 1: // 90° clockwise
				sx, sy = y, h-1-x
			case 2:
				sx, sy = w-1-x, h-1-y
			case 3: // 270° clockwise
				sx, sy = w-1-y, x
			default:
				sx, sy = x, y
			}
			if mirrorX {
				sx = w - 1 - sx
			}
			if mirrorY {
				sy = h - 1 - sy
			}
			out.Alpha[y*outW+x] = src.Alpha[sy*w+sx]
		}
	}
	return out
}
