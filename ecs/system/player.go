package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

const (
	moveSpeed = 120.0  // px/s
	jumpSpeed = 330.0  // px/s
	gravity   = -900.0 // px/s², y grows upwards
	// killDepth is how far below the origin a mover may fall before it is
	// sent back to its start.
	killDepth = 256.0
)

// PlayerMoveSystem runs a small kinematic controller: walk, jump, gravity,
// and axis-separated pushback out of bodies tagged "solid".
type PlayerMoveSystem struct{}

func NewPlayerMoveSystem() *PlayerMoveSystem {
	return &PlayerMoveSystem{}
}

func (s *PlayerMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	var solids, hazards []cp.BB
	ecs.ForEach3(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), component.TagsComponent.Kind(), func(_ ecs.Entity, b *component.Body, t *component.Transform, tags *component.Tags) {
		switch {
		case tags.Has("solid"):
			solids = append(solids, b.Bounds(*t))
		case tags.Has("hazard"):
			hazards = append(hazards, b.Bounds(*t))
		}
	})

	ecs.ForEach4(w, component.PlayerInputComponent.Kind(), component.MoverComponent.Kind(), component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, in *component.PlayerInput, m *component.Mover, b *component.Body, t *component.Transform) {
		m.VX = in.MoveX * moveSpeed
		if in.JumpPressed && m.Grounded {
			m.VY = jumpSpeed
		}
		in.JumpPressed = false
		m.VY += gravity * dt

		t.X += m.VX * dt
		for _, box := range solids {
			if !overlaps(b.Bounds(*t), box) {
				continue
			}
			if m.VX > 0 {
				t.X = box.L - b.W/2
			} else if m.VX < 0 {
				t.X = box.R + b.W/2
			}
			m.VX = 0
		}

		m.Grounded = false
		t.Y += m.VY * dt
		for _, box := range solids {
			if !overlaps(b.Bounds(*t), box) {
				continue
			}
			if m.VY < 0 {
				t.Y = box.T + b.H/2
				m.Grounded = true
			} else if m.VY > 0 {
				t.Y = box.B - b.H/2
			}
			m.VY = 0
		}

		hurt := t.Y < -killDepth
		for _, box := range hazards {
			hurt = hurt || overlaps(b.Bounds(*t), box)
		}
		if hurt {
			t.X, t.Y = m.StartX, m.StartY
			m.VX, m.VY, m.Grounded = 0, 0, false
		}
	})
}

// overlaps is a strict box test: touching edges do not count, so a body
// resting on the ground can still walk along it.
func overlaps(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}
