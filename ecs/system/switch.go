package system

import (
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

// SwitchSystem recomputes every switch once per frame: manual switches
// from their flag, trigger zones from overlap with tagged bodies.
type SwitchSystem struct{}

func NewSwitchSystem() *SwitchSystem {
	return &SwitchSystem{}
}

func (s *SwitchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ManualSwitchComponent.Kind(), func(_ ecs.Entity, m *component.ManualSwitch) {
		m.Switch.Set(m.On)
	})

	ecs.ForEach2(w, component.TriggerZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, z *component.TriggerZone, t *component.Transform) {
		zone := z.Bounds(*t)
		count := 0
		ecs.ForEach3(w, component.BodyComponent.Kind(), component.TransformComponent.Kind(), component.TagsComponent.Kind(), func(other ecs.Entity, b *component.Body, bt *component.Transform, tags *component.Tags) {
			if other == e || !tags.HasAny(z.Tags) {
				return
			}
			if zone.Intersects(b.Bounds(*bt)) {
				count++
			}
		})
		z.Occupants = count
		z.Switch.Set(count > 0)
	})
}
