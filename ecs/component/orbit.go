package component

import (
	"fmt"
	"strings"
)

// Orbiter circles a center point while Enabled.
type Orbiter struct {
	Group   string
	CenterX float64
	CenterY float64
	Radius  float64
	// Speed is in radians per second.
	Speed   float64
	Angle   float64
	Enabled bool
}

var OrbiterComponent = NewComponent[Orbiter]()

type TriggerMode int

const (
	TriggerDisabled TriggerMode = iota
	TriggerWhileSwitched
	TriggerOnRecentSwitch
)

func (m TriggerMode) String() string {
	switch m {
	case TriggerDisabled:
		return "disabled"
	case TriggerWhileSwitched:
		return "while_switched"
	case TriggerOnRecentSwitch:
		return "on_recent_switch"
	}
	return fmt.Sprintf("TriggerMode(%d)", int(m))
}

func ParseTriggerMode(s string) (TriggerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled":
		return TriggerDisabled, nil
	case "", "while_switched":
		return TriggerWhileSwitched, nil
	case "on_recent_switch":
		return TriggerOnRecentSwitch, nil
	}
	return TriggerDisabled, fmt.Errorf("component: unknown trigger mode %q", s)
}

// OrbitToggle enables or disables every orbiter in Group from the entity's
// trigger. Reverse inverts the resulting state.
type OrbitToggle struct {
	Group   string
	OnMode  TriggerMode
	OffMode TriggerMode
	Reverse bool
}

var OrbitToggleComponent = NewComponent[OrbitToggle]()
