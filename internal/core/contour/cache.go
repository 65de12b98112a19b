package contour

import "chosenoffset.com/penumbra/internal/core/shadows"

// Key identifies one extracted contour: a sprite variant plus the extraction
// parameters. Results are a pure function of the key.
type Key struct {
	SpriteID  string
	Rotation  int // quadrant, 0-3 (0°/90°/180°/270°)
	MirrorX   bool
	MirrorY   bool
	Threshold uint8
	Tolerance float64
}

// Sampler provides the alpha grid for an oriented sprite variant. Rotation
// and mirroring are applied by the sampler, so the extractor always sees the
// final orientation. A zero-size grid marks the variant as contributing no
// occluding geometry.
type Sampler interface {
	SampleAlphaGrid(spriteID string, rotation int, mirrorX, mirrorY bool) Grid
}

// Cache memoizes contour extraction per Key. Entries live until Invalidate
// (typically on asset reload). Not safe for concurrent use; the owner is
// expected to call it from a single render thread or add its own locking.
type Cache struct {
	sampler Sampler
	entries map[Key][]shadows.Segment
}

// NewCache creates a contour cache backed by the given sampler.
func NewCache(sampler Sampler) *Cache {
	return &Cache{
		sampler: sampler,
		entries: make(map[Key][]shadows.Segment),
	}
}

// Extract returns the normalized contour segments for the key, computing and
// memoizing them on first use. Callers must not modify the returned slice.
func (c *Cache) Extract(key Key) []shadows.Segment {
	if segments, ok := c.entries[key]; ok {
		return segments
	}

	grid := c.sampler.SampleAlphaGrid(key.SpriteID, key.Rotation, key.MirrorX, key.MirrorY)
	segments := ExtractSegments(grid, key.Threshold, key.Tolerance)
	c.entries[key] = segments
	return segments
}

// Len reports the number of cached contours.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Invalidate drops every cached contour.
func (c *Cache) Invalidate() {
	c.entries = make(map[Key][]shadows.Segment)
}
