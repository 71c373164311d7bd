package system

import (
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
	"github.com/milk9111/kzzzt/trigger"
)

// ListenerSystem keeps the listener registry in step with the world and
// drives it once per frame. Listeners of disabled or destroyed entities are
// unregistered, which discards their runners.
type ListenerSystem struct {
	registry *trigger.Registry
	tracked  map[ecs.Entity]*trigger.Listener
	// hooked holds the hook each wrapped listener had before mirroring.
	hooked map[*trigger.Listener]trigger.UpdateHook
}

func NewListenerSystem(registry *trigger.Registry) *ListenerSystem {
	if registry == nil {
		registry = trigger.NewRegistry()
	}
	return &ListenerSystem{
		registry: registry,
		tracked:  make(map[ecs.Entity]*trigger.Listener),
		hooked:   make(map[*trigger.Listener]trigger.UpdateHook),
	}
}

func (s *ListenerSystem) Registry() *trigger.Registry {
	return s.registry
}

func (s *ListenerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	seen := make(map[ecs.Entity]bool)
	ecs.ForEach(w, component.TriggerListenerComponent.Kind(), func(e ecs.Entity, tl *component.TriggerListener) {
		if tl.Listener == nil {
			return
		}
		seen[e] = true
		if prev, ok := s.tracked[e]; ok && prev != tl.Listener {
			s.release(prev)
		}
		s.tracked[e] = tl.Listener

		if tl.Disabled {
			if s.registry.Registered(tl.Listener) {
				tl.Listener.Disable(s.registry)
			}
			tl.Active, tl.Rising, tl.Falling = false, false, false
			return
		}
		if s.registry.Registered(tl.Listener) {
			return
		}

		tl.Listener.Validate(ownSwitches(w, e)...)
		if _, ok := s.hooked[tl.Listener]; !ok && (tl.Listener.Hook != nil || consumesTrigger(w, e)) {
			s.hooked[tl.Listener] = tl.Listener.Hook
			tl.Listener.Hook = mirrorHook(tl, tl.Listener.Hook)
		}
		tl.Listener.Enable(s.registry)
	})

	for e, l := range s.tracked {
		if !seen[e] {
			s.release(l)
			delete(s.tracked, e)
		}
	}

	s.registry.DriveFrame(w.DeltaTime())
}

// release unregisters l and puts back the hook it had before mirroring.
func (s *ListenerSystem) release(l *trigger.Listener) {
	l.Disable(s.registry)
	if prev, ok := s.hooked[l]; ok {
		l.Hook = prev
		delete(s.hooked, l)
	}
}

// mirrorHook copies the runner's result into the component after each poll,
// then runs the listener's own hook, if any.
func mirrorHook(tl *component.TriggerListener, next trigger.UpdateHook) trigger.UpdateHook {
	return func(l *trigger.Listener) {
		tl.Active = l.IsActivated()
		tl.Rising = l.ActivatedOnCurrentFrame()
		tl.Falling = l.DeactivatedOnCurrentFrame()
		if next != nil {
			next(l)
		}
	}
}
