package lighting

import (
	"image/color"

	"chosenoffset.com/penumbra/internal/core/occluder"
	"chosenoffset.com/penumbra/internal/core/shadows"
)

// Default ray budgets for visibility polygons.
const (
	DefaultMinRays = 64
	DefaultMaxRays = 256
)

// LightSource represents a single light source in the game world
type LightSource struct {
	X         float64     // World X position (in pixels)
	Y         float64     // World Y position (in pixels)
	Radius    float64     // Light radius (in pixels)
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
}

// Manager handles all light sources and their visibility polygons. It owns
// the per-light polygon cache; a light rendered in several passes per frame
// (a white mask pass and a tinted pass) computes its polygon once.
type Manager struct {
	ambientLight  float64 // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
	playerLight   *LightSource
	playerLightOn bool
	staticLights  map[string]*LightSource // Keyed by instance ID

	polygons *PolygonCache
	minRays  int
	maxRays  int
}

// NewManager creates a new lighting manager
func NewManager() *Manager {
	return &Manager{
		ambientLight:  0.15, // Low ambient light for better testing visibility
		playerLightOn: false,
		staticLights:  make(map[string]*LightSource),
		polygons:      NewPolygonCache(0),
		minRays:       DefaultMinRays,
		maxRays:       DefaultMaxRays,
	}
}

// SetRayBudget overrides the min/max ray counts used for new polygons.
func (m *Manager) SetRayBudget(minRays, maxRays int) {
	if minRays > 0 {
		m.minRays = minRays
	}
	if maxRays >= m.minRays {
		m.maxRays = maxRays
	}
	m.polygons.Invalidate()
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = level
}

// GetAmbientLight returns the current ambient light level
func (m *Manager) GetAmbientLight() float64 {
	return m.ambientLight
}

// SetPlayerLight configures the player's equipped light source
func (m *Manager) SetPlayerLight(x, y, radius, intensity float64, col color.NRGBA) {
	if m.playerLight == nil {
		m.playerLight = &LightSource{}
	}
	m.playerLight.X = x
	m.playerLight.Y = y
	m.playerLight.Radius = radius
	m.playerLight.Intensity = intensity
	m.playerLight.Color = col
}

// EnablePlayerLight turns on/off the player's light source
func (m *Manager) EnablePlayerLight(enabled bool) {
	m.playerLightOn = enabled
}

// IsPlayerLightOn returns whether the player's light is currently on
func (m *Manager) IsPlayerLightOn() bool {
	return m.playerLightOn
}

// UpdatePlayerLightPosition updates the player's light position (called each frame)
func (m *Manager) UpdatePlayerLightPosition(x, y float64) {
	if m.playerLight != nil {
		m.playerLight.X = x
		m.playerLight.Y = y
	}
}

// AddStaticLight adds or replaces a world-placed light source (torch,
// terminal glow, etc). The ID comes from whatever placed the light.
func (m *Manager) AddStaticLight(id string, light LightSource) {
	copied := light
	m.staticLights[id] = &copied
}

// RemoveStaticLight removes a world-placed light source (e.g., if destroyed)
func (m *Manager) RemoveStaticLight(id string) {
	delete(m.staticLights, id)
}

// ClearStaticLights removes all placed lights (called when loading a new map)
func (m *Manager) ClearStaticLights() {
	m.staticLights = make(map[string]*LightSource)
}

// GetAllLights returns all active light sources
func (m *Manager) GetAllLights() []LightSource {
	lights := make([]LightSource, 0, len(m.staticLights)+1)

	// Add player light if enabled
	if m.playerLightOn && m.playerLight != nil {
		lights = append(lights, *m.playerLight)
	}

	// Add all placed lights
	for _, light := range m.staticLights {
		lights = append(lights, *light)
	}

	return lights
}

// VisibilityPolygon returns the lit-area polygon for one light against the
// occluder set, cached per (position, radius, occluder version). index may be
// nil; a stale index (built from another version) is ignored rather than
// risking wrong candidates.
func (m *Manager) VisibilityPolygon(light LightSource, set *occluder.Set, index *occluder.SpatialIndex) []shadows.Point {
	key := PolygonKey{
		X:               light.X,
		Y:               light.Y,
		Radius:          light.Radius,
		OccluderVersion: set.Version,
	}
	if polygon, ok := m.polygons.Get(key); ok {
		return polygon
	}

	origin := shadows.Point{X: light.X, Y: light.Y}
	var filter shadows.CandidateFilter
	if index != nil && index.Version() == set.Version {
		filter = index.Filter(origin, light.Radius)
	}

	polygon := shadows.ComputeVisibilityPolygonFiltered(origin, light.Radius, set.Segments, filter, m.minRays, m.maxRays)
	m.polygons.Put(key, polygon)
	return polygon
}

// InvalidatePolygons drops all cached visibility polygons.
func (m *Manager) InvalidatePolygons() {
	m.polygons.Invalidate()
}
