package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kzzzt/trigger"
)

// TriggerZone drives Switch from overlap: the switch is on while any body
// tagged with one of Tags overlaps the W x H box around the transform.
type TriggerZone struct {
	Switch *trigger.Switch
	W      float64
	H      float64
	Tags   []string

	// Occupants is the number of matching bodies found on the last frame.
	Occupants int
}

func (z TriggerZone) Bounds(t Transform) cp.BB {
	return cp.NewBBForExtents(t.Vector(), z.W/2, z.H/2)
}

var TriggerZoneComponent = NewComponent[TriggerZone]()

// ManualSwitch is a switch whose raw condition is set from outside, such as
// a script or a pressure plate driven by game code.
type ManualSwitch struct {
	Switch *trigger.Switch
	On     bool
}

var ManualSwitchComponent = NewComponent[ManualSwitch]()
