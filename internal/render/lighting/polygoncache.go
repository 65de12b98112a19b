package lighting

import "chosenoffset.com/penumbra/internal/core/shadows"

// DefaultPolygonCacheCap bounds the number of cached polygons. A redraw pass
// touches each light once or twice, so the cap only matters when callers keep
// a manager alive across many occluder versions.
const DefaultPolygonCacheCap = 256

// PolygonKey identifies one computed visibility polygon. Including the
// occluder version means stale entries are simply never hit again after a
// rebuild; they age out through the cap instead.
type PolygonKey struct {
	X               float64
	Y               float64
	Radius          float64
	OccluderVersion uint64
}

// PolygonCache memoizes visibility polygons for reuse across render passes
// of the same light. Not safe for concurrent use.
type PolygonCache struct {
	entries map[PolygonKey][]shadows.Point
	limit   int
}

// NewPolygonCache creates a cache. limit <= 0 selects DefaultPolygonCacheCap.
func NewPolygonCache(limit int) *PolygonCache {
	if limit <= 0 {
		limit = DefaultPolygonCacheCap
	}
	return &PolygonCache{
		entries: make(map[PolygonKey][]shadows.Point),
		limit:   limit,
	}
}

// Get returns the cached polygon for the key, if present. Callers must not
// modify the returned slice.
func (c *PolygonCache) Get(key PolygonKey) ([]shadows.Point, bool) {
	polygon, ok := c.entries[key]
	return polygon, ok
}

// Put stores a polygon. When a new key would exceed the cap the cache resets
// wholesale; a full reset is cheap and keeps the behavior deterministic,
// entries are recomputed on the next pass anyway. Overwriting an existing key
// never grows the map and so never resets.
func (c *PolygonCache) Put(key PolygonKey, polygon []shadows.Point) {
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.limit {
		c.entries = make(map[PolygonKey][]shadows.Point)
	}
	c.entries[key] = polygon
}

// Len reports the number of cached polygons.
func (c *PolygonCache) Len() int {
	return len(c.entries)
}

// Invalidate drops every cached polygon.
func (c *PolygonCache) Invalidate() {
	c.entries = make(map[PolygonKey][]shadows.Point)
}
