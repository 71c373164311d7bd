package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kzzzt/common"
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

// DestroyOutsideSystem destroys entities that have not overlapped a zone
// tagged with one of their tags for longer than their delay.
type DestroyOutsideSystem struct{}

func NewDestroyOutsideSystem() *DestroyOutsideSystem {
	return &DestroyOutsideSystem{}
}

func (s *DestroyOutsideSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	var doomed []ecs.Entity
	ecs.ForEach3(w, component.DestroyOutsideComponent.Kind(), component.BodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.DestroyOutside, b *component.Body, t *component.Transform) {
		if d.Delay <= 0 {
			d.Delay = component.DefaultOutsideDelay
			d.Timer = d.Delay
		}
		if insideTaggedZone(w, e, b.Bounds(*t), d.Tags) {
			d.Timer = d.Delay
			return
		}
		if common.UseAsTimer(&d.Timer, dt) {
			doomed = append(doomed, e)
		}
	})

	for _, e := range doomed {
		ecs.DestroyEntity(w, e)
	}
}

func insideTaggedZone(w *ecs.World, self ecs.Entity, box cp.BB, tags []string) bool {
	inside := false
	ecs.ForEach3(w, component.TriggerZoneComponent.Kind(), component.TransformComponent.Kind(), component.TagsComponent.Kind(), func(e ecs.Entity, z *component.TriggerZone, t *component.Transform, zt *component.Tags) {
		if inside || e == self || !zt.HasAny(tags) {
			return
		}
		inside = z.Bounds(*t).Intersects(box)
	})
	return inside
}
