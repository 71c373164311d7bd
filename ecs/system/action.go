package system

import (
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
)

// ActionSystem ticks every state machine by the frame's delta time.
type ActionSystem struct{}

func NewActionSystem() *ActionSystem {
	return &ActionSystem{}
}

func (s *ActionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.StateMachineComponent.Kind(), func(_ ecs.Entity, sm *component.StateMachine) {
		if sm.Paused || sm.Machine == nil {
			return
		}
		sm.Machine.Update(dt)
	})
}
