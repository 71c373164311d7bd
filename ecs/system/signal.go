package system

import (
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
	"github.com/milk9111/kzzzt/trigger"
)

// Signal is anything a trigger-driven behavior can read: a switch or a
// listener.
type Signal interface {
	IsActivated() bool
	ActivatedOnCurrentFrame() bool
	DeactivatedOnCurrentFrame() bool
}

// signalOf picks the trigger of e that behaviors react to. An enabled
// listener wins over the entity's own switches.
func signalOf(w *ecs.World, e ecs.Entity) Signal {
	if tl, ok := ecs.Get(w, e, component.TriggerListenerComponent.Kind()); ok && tl.Listener != nil && !tl.Disabled {
		return tl
	}
	if z, ok := ecs.Get(w, e, component.TriggerZoneComponent.Kind()); ok && z.Switch != nil {
		return z.Switch
	}
	if m, ok := ecs.Get(w, e, component.ManualSwitchComponent.Kind()); ok && m.Switch != nil {
		return m.Switch
	}
	return nil
}

// ownSwitches lists the switches that live on e itself. Listener slots
// left empty are resolved against them by name.
func ownSwitches(w *ecs.World, e ecs.Entity) []*trigger.Switch {
	var out []*trigger.Switch
	if z, ok := ecs.Get(w, e, component.TriggerZoneComponent.Kind()); ok && z.Switch != nil {
		out = append(out, z.Switch)
	}
	if m, ok := ecs.Get(w, e, component.ManualSwitchComponent.Kind()); ok && m.Switch != nil {
		out = append(out, m.Switch)
	}
	return out
}

// consumesTrigger reports whether e carries a behavior that reads its
// trigger every frame.
func consumesTrigger(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.CompleteLevelOnTriggerComponent.Kind()) ||
		ecs.Has(w, e, component.CheckpointComponent.Kind()) ||
		ecs.Has(w, e, component.OrbitToggleComponent.Kind())
}
