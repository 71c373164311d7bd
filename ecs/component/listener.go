package component

import "github.com/milk9111/kzzzt/trigger"

// TriggerListener attaches a trigger.Listener to an entity. While the
// entity has a behavior that consumes it, the listener's hook mirrors the
// runner's result into Active, Rising and Falling once per frame.
type TriggerListener struct {
	Listener *trigger.Listener
	Disabled bool

	Active  bool
	Rising  bool
	Falling bool
}

func (l *TriggerListener) IsActivated() bool {
	return l != nil && l.Active
}

func (l *TriggerListener) ActivatedOnCurrentFrame() bool {
	return l != nil && l.Rising
}

func (l *TriggerListener) DeactivatedOnCurrentFrame() bool {
	return l != nil && l.Falling
}

var TriggerListenerComponent = NewComponent[TriggerListener]()
