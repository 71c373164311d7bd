package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

var (
	zoneIdle   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	zoneActive = color.NRGBA{R: 0xff, G: 0xff, B: 0x40, A: 0xff}
)

// RenderSystem draws debug shapes, alerts and, in debug mode, trigger
// zones. World y grows upwards; screen y grows downwards.
type RenderSystem struct {
	ScreenW int
	ScreenH int
	Debug   bool
}

func NewRenderSystem(screenW, screenH int) *RenderSystem {
	return &RenderSystem{ScreenW: screenW, ScreenH: screenH}
}

// Update is a no-op (render occurs in Draw).
func (s *RenderSystem) Update(w *ecs.World) {}

// View returns the first camera, or a unit-zoom camera at the origin.
func View(w *ecs.World) component.Camera {
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
			return *c
		}
	}
	return component.Camera{Zoom: 1}
}

// ToScreen maps a world point to screen pixels for cam.
func (s *RenderSystem) ToScreen(cam component.Camera, x, y float64) (float32, float32) {
	return float32((x-cam.X)*cam.Zoom + float64(s.ScreenW)/2), float32(float64(s.ScreenH)/2 - (y-cam.Y)*cam.Zoom)
}

func (s *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	cam := View(w)

	ecs.ForEach3(w, component.DebugShapeComponent.Kind(), component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, d *component.DebugShape, b *component.Body, t *component.Transform) {
		x, y := s.ToScreen(cam, t.X-b.W/2, t.Y+b.H/2)
		vector.DrawFilledRect(screen, x, y, float32(b.W*cam.Zoom), float32(b.H*cam.Zoom), d.Color, false)
	})

	if s.Debug {
		ecs.ForEach2(w, component.TriggerZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.TriggerZone, t *component.Transform) {
			clr := zoneIdle
			if z.Switch.IsActivated() {
				clr = zoneActive
			}
			x, y := s.ToScreen(cam, t.X-z.W/2, t.Y+z.H/2)
			vector.StrokeRect(screen, x, y, float32(z.W*cam.Zoom), float32(z.H*cam.Zoom), 1, clr, false)
		})
	}

	// Alerts go last so they sit on top.
	ecs.ForEach2(w, component.AlertComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, a *component.Alert, t *component.Transform) {
		x, y := s.ToScreen(cam, t.X, t.Y)
		ebitenutil.DebugPrintAt(screen, a.Text, int(x)-len(a.Text)*3, int(y)-32)
	})
}
