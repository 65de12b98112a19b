package occluder

// PlacedInstance is one sprite placed on the map, carrying the pose data the
// builder needs to project its contour into world space. Whether an instance
// blocks light is decided externally (tag-driven) and arrives here as the
// opaque IsOccluder flag.
type PlacedInstance struct {
	SpriteID string

	// CellX/CellY anchor the instance's top-left corner in world units.
	// When HasCenter is set, CenterX/CenterY override the derived center.
	CellX, CellY     float64
	CenterX, CenterY float64
	HasCenter        bool

	Rotation int // quadrant, 0-3
	MirrorX  bool
	MirrorY  bool
	Scale    float64 // 0 means unscaled

	// BaseWidth/BaseHeight are the unrotated footprint in world units,
	// derived externally from the sprite's cell span.
	BaseWidth, BaseHeight float64

	IsOccluder bool
}

// footprint returns the world extent of the instance, swapping the axes for
// 90°/270° rotations and applying the scale.
func (inst PlacedInstance) footprint() (float64, float64) {
	w, h := inst.BaseWidth, inst.BaseHeight
	if inst.Rotation%2 != 0 {
		w, h = h, w
	}
	scale := inst.Scale
	if scale <= 0 {
		scale = 1
	}
	return w * scale, h * scale
}

// center returns the world center of the instance's footprint.
func (inst PlacedInstance) center() (float64, float64) {
	w, h := inst.footprint()
	if inst.HasCenter {
		return inst.CenterX, inst.CenterY
	}
	return inst.CellX + w/2, inst.CellY + h/2
}
