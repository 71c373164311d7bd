package trigger

import (
	"fmt"
	"strings"

	"github.com/milk9111/kzzzt/common"
)

// ListenMode selects between level- and edge-triggered listening.
type ListenMode int

const (
	// ListenDefault reports activation for as long as any switch is on.
	ListenDefault ListenMode = iota
	// ListenFirstFrameOnly reports activation only on the tick a switch turns on.
	ListenFirstFrameOnly
)

func (m ListenMode) String() string {
	switch m {
	case ListenDefault:
		return "default"
	case ListenFirstFrameOnly:
		return "first_frame_only"
	}
	return fmt.Sprintf("ListenMode(%d)", int(m))
}

// ParseListenMode accepts the names produced by String. The empty string
// means ListenDefault.
func ParseListenMode(s string) (ListenMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return ListenDefault, nil
	case "first_frame_only", "firstframeonly":
		return ListenFirstFrameOnly, nil
	}
	return ListenDefault, fmt.Errorf("trigger: listen mode %q: %w", s, common.ErrInvalidArgument)
}

// Config describes which switches a listener aggregates and how.
type Config struct {
	Switches []*Switch
	// Names mirrors Switches and is only used to re-resolve empty slots.
	Names    []string

	Mode                 ListenMode
	ListenToDeactivation bool
	FlipActivation       bool
}

// Validate repairs the config in place. There is always at least one slot,
// Names always has the same length as Switches, a set switch writes its
// name into its slot, and an empty slot whose name matches one of the
// available switches is filled with it.
func (c *Config) Validate(available ...*Switch) {
	if c == nil {
		return
	}
	if len(c.Switches) == 0 {
		c.Switches, _ = common.Resize(c.Switches, 1)
	}
	if len(c.Names) != len(c.Switches) {
		c.Names, _ = common.Resize(c.Names, len(c.Switches))
	}

	for i, sw := range c.Switches {
		if sw != nil {
			c.Names[i] = sw.Name
			continue
		}
		if c.Names[i] == "" {
			continue
		}
		for _, candidate := range available {
			if candidate != nil && candidate.Name == c.Names[i] {
				c.Switches[i] = candidate
				break
			}
		}
	}
}
