package render

import (
	"testing"

	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

func TestViewDefaultsAndCamera(t *testing.T) {
	w := ecs.NewWorld()
	if cam := View(w); cam.Zoom != 1 || cam.X != 0 || cam.Y != 0 {
		t.Fatalf("expected a unit camera, got %+v", cam)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{X: 10, Y: 20, Zoom: 2}); err != nil {
		t.Fatal(err)
	}
	if cam := View(w); cam.X != 10 || cam.Zoom != 2 {
		t.Fatalf("expected the world camera, got %+v", cam)
	}
}

func TestToScreenFlipsY(t *testing.T) {
	s := NewRenderSystem(200, 100)
	cam := component.Camera{X: 10, Y: 20, Zoom: 2}

	tests := []struct {
		x, y   float64
		sx, sy float32
	}{
		{10, 20, 100, 50},
		{15, 20, 110, 50},
		{10, 25, 100, 40},
	}
	for _, tt := range tests {
		sx, sy := s.ToScreen(cam, tt.x, tt.y)
		if sx != tt.sx || sy != tt.sy {
			t.Fatalf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, sx, sy, tt.sx, tt.sy)
		}
	}
}
