package occluder

import (
	"math"

	"chosenoffset.com/penumbra/internal/core/contour"
	"chosenoffset.com/penumbra/internal/core/shadows"
)

// Set is one consistent snapshot of the world's occluding geometry. Version
// increments on every rebuild, so derived results (visibility polygons,
// spatial indexes) can detect staleness by comparing versions.
type Set struct {
	Segments []shadows.Segment // world frame
	Version  uint64
	MinX     float64
	MinY     float64
	MaxX     float64
	MaxY     float64
}

// Builder turns occluding instances into world-space segment sets. It keeps
// the last built set and only rebuilds when the instance signature changes,
// so callers can invoke Build every frame. Not safe for concurrent use.
type Builder struct {
	contours  *contour.Cache
	threshold uint8
	tolerance float64 // simplification tolerance in world units

	current     *Set
	signature   uint64
	lastVersion uint64
}

// NewBuilder creates a builder. tolerance is the contour simplification bound
// expressed in world units; it is divided by each instance's footprint before
// extraction so visual fidelity is independent of sprite resolution.
func NewBuilder(contours *contour.Cache, threshold uint8, tolerance float64) *Builder {
	return &Builder{
		contours:  contours,
		threshold: threshold,
		tolerance: tolerance,
	}
}

// Build returns the occluder set for the given instances. When the occluding
// instances' signature matches the currently cached set, that set is returned
// unchanged with the same version; otherwise a full rebuild runs and the
// version increments.
func (b *Builder) Build(instances []PlacedInstance) *Set {
	sig := signatureOf(instances)
	if b.current != nil && sig == b.signature {
		return b.current
	}

	b.lastVersion++
	set := &Set{
		Version: b.lastVersion,
		MinX:    math.Inf(1),
		MinY:    math.Inf(1),
		MaxX:    math.Inf(-1),
		MaxY:    math.Inf(-1),
	}

	for _, inst := range instances {
		if !inst.IsOccluder {
			continue
		}
		b.appendInstance(set, inst)
	}

	if len(set.Segments) == 0 {
		set.MinX, set.MinY, set.MaxX, set.MaxY = 0, 0, 0, 0
	}

	b.current = set
	b.signature = sig
	return set
}

// Current returns the last built set, or nil before the first Build.
func (b *Builder) Current() *Set {
	return b.current
}

// Invalidate forgets the cached set so the next Build always reconstructs,
// e.g. after an asset reload changed the underlying contours. The version
// counter survives so consumers keyed on it stay consistent.
func (b *Builder) Invalidate() {
	b.current = nil
	b.signature = 0
}

// appendInstance projects one instance's normalized contour into world space
// and appends the resulting segments, growing the set bounds.
func (b *Builder) appendInstance(set *Set, inst PlacedInstance) {
	w, h := inst.footprint()
	if w <= 0 || h <= 0 {
		return
	}
	cx, cy := inst.center()

	normalizedTolerance := b.tolerance / math.Max(w, h)
	segments := b.contours.Extract(contour.Key{
		SpriteID:  inst.SpriteID,
		Rotation:  inst.Rotation & 3,
		MirrorX:   inst.MirrorX,
		MirrorY:   inst.MirrorY,
		Threshold: b.threshold,
		Tolerance: normalizedTolerance,
	})

	originX := cx - w/2
	originY := cy - h/2
	for _, seg := range segments {
		world := shadows.Segment{
			A: shadows.Point{X: originX + seg.A.X*w, Y: originY + seg.A.Y*h},
			B: shadows.Point{X: originX + seg.B.X*w, Y: originY + seg.B.Y*h},
		}
		set.Segments = append(set.Segments, world)
		set.grow(world.A)
		set.grow(world.B)
	}
}

func (s *Set) grow(p shadows.Point) {
	s.MinX = math.Min(s.MinX, p.X)
	s.MinY = math.Min(s.MinY, p.Y)
	s.MaxX = math.Max(s.MaxX, p.X)
	s.MaxY = math.Max(s.MaxY, p.Y)
}
