package system

import (
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

// CameraRelativeSystem positions parallax-style entities from the camera.
type CameraRelativeSystem struct{}

func NewCameraRelativeSystem() *CameraRelativeSystem {
	return &CameraRelativeSystem{}
}

func (s *CameraRelativeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camEnt, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.CameraRelativeComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, r *component.CameraRelative, t *component.Transform) {
		t.X = relativeAxis(cam.X, r.RatioX) + r.OffsetX
		t.Y = relativeAxis(cam.Y, r.RatioY) + r.OffsetY
	})
}

// relativeAxis is -camera/ratio, with a zero ratio contributing nothing.
func relativeAxis(camera, ratio float64) float64 {
	if ratio == 0 {
		return 0
	}
	return -camera / ratio
}

// cameraSmooth is the share of the distance to the player the camera
// covers each frame.
const cameraSmooth = 0.15

// CameraFollowSystem eases the camera towards the player.
type CameraFollowSystem struct{}

func NewCameraFollowSystem() *CameraFollowSystem {
	return &CameraFollowSystem{}
}

func (s *CameraFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		c.X += (target.X - c.X) * cameraSmooth
		c.Y += (target.Y - c.Y) * cameraSmooth
	})
}
