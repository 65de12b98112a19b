// Command shadowdemo is an interactive viewer for the shadow-geometry
// pipeline: a handful of generated occluder sprites, a light following the
// cursor, and the resulting visibility polygon rendered each frame.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/penumbra/internal/core/contour"
	"chosenoffset.com/penumbra/internal/core/occluder"
	"chosenoffset.com/penumbra/internal/core/shadows"
	"chosenoffset.com/penumbra/internal/render/lighting"
	"chosenoffset.com/penumbra/internal/world/sprite"
)

type Game struct {
	width, height int

	builder   *occluder.Builder
	instances []occluder.PlacedInstance
	lights    *lighting.Manager

	set   *occluder.Set
	index *occluder.SpatialIndex

	whiteImg *ebiten.Image
}

func (g *Game) Update() error {
	g.set = g.builder.Build(g.instances)
	if g.index == nil || g.index.Version() != g.set.Version {
		g.index = occluder.NewSpatialIndex(g.set, 0)
	}

	mx, my := ebiten.CursorPosition()
	g.lights.UpdatePlayerLightPosition(float64(mx), float64(my))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{12, 12, 18, 255})

	var cursorPolygon []shadows.Point
	var cursorOrigin shadows.Point
	for i, light := range g.lights.GetAllLights() {
		polygon := g.lights.VisibilityPolygon(light, g.set, g.index)

		// White mask pass, then the tint pass; the second reuses the
		// cached polygon.
		g.drawPolygon(screen, polygon, color.RGBA{40, 40, 40, 255})
		tint := color.RGBA{light.Color.R, light.Color.G, light.Color.B, 90}
		g.drawPolygon(screen, polygon, tint)

		// The player light is first when enabled.
		if i == 0 && g.lights.IsPlayerLightOn() {
			cursorPolygon = polygon
			cursorOrigin = shadows.Point{X: light.X, Y: light.Y}
		}
	}

	// Segment overlay: edges facing the cursor light draw brighter than the
	// back-facing ones behind them.
	for _, seg := range g.set.Segments {
		edge := color.RGBA{130, 55, 55, 255}
		if shadows.IsFacingPoint(seg, cursorOrigin) {
			edge = color.RGBA{220, 80, 80, 255}
		}
		vector.StrokeLine(screen,
			float32(seg.A.X), float32(seg.A.Y),
			float32(seg.B.X), float32(seg.B.Y),
			1, edge, false)
	}

	// Non-occluding props light up when the cursor's visibility polygon
	// reaches them.
	for _, inst := range g.instances {
		if inst.IsOccluder {
			continue
		}
		cx := inst.CellX + inst.BaseWidth/2
		cy := inst.CellY + inst.BaseHeight/2
		marker := color.RGBA{70, 70, 80, 255}
		if shadows.PointInPolygon(shadows.Point{X: cx, Y: cy}, cursorPolygon) {
			marker = color.RGBA{150, 230, 150, 255}
		}
		vector.StrokeCircle(screen, float32(cx), float32(cy), 5, 1.5, marker, false)
	}
}

func (g *Game) drawPolygon(dst *ebiten.Image, points []shadows.Point, c color.RGBA) {
	if len(points) < 3 {
		return
	}

	path := vector.Path{}
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for i := 1; i < len(points); i++ {
		path.LineTo(float32(points[i].X), float32(points[i].Y))
	}
	path.Close()

	// Fill with anti-aliasing disabled to avoid edge artifacts
	vertexes, indexes := path.AppendVerticesAndIndicesForFilling(nil, nil)

	if g.whiteImg == nil {
		g.whiteImg = ebiten.NewImage(1, 1)
		g.whiteImg.Fill(color.White)
	}

	for i := range vertexes {
		vertexes[i].SrcX = 0
		vertexes[i].SrcY = 0
		vertexes[i].ColorR = float32(c.R) / 255
		vertexes[i].ColorG = float32(c.G) / 255
		vertexes[i].ColorB = float32(c.B) / 255
		vertexes[i].ColorA = float32(c.A) / 255
	}

	opts := &ebiten.DrawTrianglesOptions{AntiAlias: false}
	dst.DrawTriangles(vertexes, indexes, g.whiteImg, opts)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// placeholderSprites generates simple alpha-masked shapes so the demo runs
// without asset files: a solid crate, a round pillar, and an L-shaped wall.
func placeholderSprites(sampler *sprite.ImageSampler) {
	crate := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			crate.SetNRGBA(x, y, color.NRGBA{160, 120, 70, 255})
		}
	}
	sampler.Register("crate", crate)

	pillar := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			dx, dy := float64(x)-15.5, float64(y)-15.5
			if dx*dx+dy*dy <= 14*14 {
				pillar.SetNRGBA(x, y, color.NRGBA{120, 120, 140, 255})
			}
		}
	}
	sampler.Register("pillar", pillar)

	wall := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if x < 12 || y < 12 {
				wall.SetNRGBA(x, y, color.NRGBA{90, 90, 100, 255})
			}
		}
	}
	sampler.Register("wall", wall)
}

func main() {
	width := flag.Int("width", 960, "Window width")
	height := flag.Int("height", 640, "Window height")
	minRays := flag.Int("min-rays", lighting.DefaultMinRays, "Base ray count per light")
	maxRays := flag.Int("max-rays", lighting.DefaultMaxRays, "Ray budget per light")
	radius := flag.Float64("radius", 320, "Cursor light radius")
	flag.Parse()

	sampler := sprite.NewImageSampler(0)
	placeholderSprites(sampler)

	builder := occluder.NewBuilder(contour.NewCache(sampler), 16, 1.5)

	instances := []occluder.PlacedInstance{
		{SpriteID: "crate", CellX: 180, CellY: 140, BaseWidth: 64, BaseHeight: 64, IsOccluder: true},
		{SpriteID: "crate", CellX: 640, CellY: 420, BaseWidth: 64, BaseHeight: 64, Rotation: 1, IsOccluder: true},
		{SpriteID: "pillar", CellX: 460, CellY: 200, BaseWidth: 96, BaseHeight: 96, IsOccluder: true},
		{SpriteID: "wall", CellX: 120, CellY: 420, BaseWidth: 128, BaseHeight: 128, IsOccluder: true},
		{SpriteID: "wall", CellX: 680, CellY: 100, BaseWidth: 128, BaseHeight: 128, Rotation: 2, MirrorX: true, IsOccluder: true},
		// Non-occluding props, drawn as lit/unlit markers.
		{SpriteID: "pillar", CellX: 320, CellY: 520, BaseWidth: 32, BaseHeight: 32},
		{SpriteID: "pillar", CellX: 840, CellY: 260, BaseWidth: 32, BaseHeight: 32},
	}

	lights := lighting.NewManager()
	lights.SetRayBudget(*minRays, *maxRays)
	lights.SetPlayerLight(0, 0, *radius, 1.0, color.NRGBA{255, 240, 200, 255})
	lights.EnablePlayerLight(true)
	lights.AddStaticLight("lamp", lighting.LightSource{
		X: 800, Y: 520, Radius: 220, Intensity: 0.8,
		Color: color.NRGBA{255, 170, 90, 255},
	})

	game := &Game{
		width:     *width,
		height:    *height,
		builder:   builder,
		instances: instances,
		lights:    lights,
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Shadow Geometry Demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Failed to run demo: %v", err)
	}
}
