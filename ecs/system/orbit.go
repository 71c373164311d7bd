package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

// OrbitToggleSystem switches orbiter groups on and off from a trigger.
type OrbitToggleSystem struct{}

func NewOrbitToggleSystem() *OrbitToggleSystem {
	return &OrbitToggleSystem{}
}

func (s *OrbitToggleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.OrbitToggleComponent.Kind(), func(e ecs.Entity, t *component.OrbitToggle) {
		sig := signalOf(w, e)
		if sig == nil {
			return
		}

		switch t.OnMode {
		case component.TriggerWhileSwitched:
			if sig.IsActivated() {
				setOrbiters(w, t, true)
			}
		case component.TriggerOnRecentSwitch:
			if sig.ActivatedOnCurrentFrame() {
				setOrbiters(w, t, true)
			}
		}

		switch t.OffMode {
		case component.TriggerWhileSwitched:
			if !sig.IsActivated() {
				setOrbiters(w, t, false)
			}
		case component.TriggerOnRecentSwitch:
			if sig.ActivatedOnCurrentFrame() {
				setOrbiters(w, t, false)
			}
		}
	})
}

func setOrbiters(w *ecs.World, t *component.OrbitToggle, active bool) {
	ecs.ForEach(w, component.OrbiterComponent.Kind(), func(_ ecs.Entity, o *component.Orbiter) {
		if o.Group == t.Group {
			o.Enabled = active != t.Reverse
		}
	})
}

// OrbitSystem advances enabled orbiters and places them on their circle.
type OrbitSystem struct{}

func NewOrbitSystem() *OrbitSystem {
	return &OrbitSystem{}
}

func (s *OrbitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.OrbiterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, o *component.Orbiter, t *component.Transform) {
		if !o.Enabled {
			return
		}
		o.Angle += o.Speed * dt
		pos := cp.Vector{X: o.CenterX, Y: o.CenterY}.Add(cp.ForAngle(o.Angle).Mult(o.Radius))
		t.X, t.Y = pos.X, pos.Y
	})
}
