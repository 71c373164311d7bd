package trigger

import "testing"

func TestSwitchEdges(t *testing.T) {
	raw := []bool{false, true, true, false, false, true}
	wantOn := []bool{false, true, false, false, false, true}
	wantOff := []bool{false, false, false, true, false, false}

	s := NewSwitch("plate")
	for i, v := range raw {
		s.Set(v)
		if s.IsActivated() != v {
			t.Fatalf("tick %d: IsActivated = %v, want %v", i, s.IsActivated(), v)
		}
		if s.ActivatedOnCurrentFrame() != wantOn[i] {
			t.Fatalf("tick %d: ActivatedOnCurrentFrame = %v, want %v", i, s.ActivatedOnCurrentFrame(), wantOn[i])
		}
		if s.DeactivatedOnCurrentFrame() != wantOff[i] {
			t.Fatalf("tick %d: DeactivatedOnCurrentFrame = %v, want %v", i, s.DeactivatedOnCurrentFrame(), wantOff[i])
		}
	}
}

func TestSwitchUnsetAndNil(t *testing.T) {
	var s Switch
	if s.IsActivated() || s.ActivatedOnCurrentFrame() || s.DeactivatedOnCurrentFrame() {
		t.Fatalf("zero switch should read inactive")
	}

	var nilSwitch *Switch
	nilSwitch.Set(true)
	if nilSwitch.IsActivated() {
		t.Fatalf("nil switch should read inactive")
	}

	s.Set(true)
	s.Reset()
	if s.IsActivated() || s.ActivatedOnCurrentFrame() {
		t.Fatalf("reset switch should read inactive")
	}
}

func TestConfigValidate(t *testing.T) {
	a := NewSwitch("a")
	b := NewSwitch("b")

	cases := []struct {
		name      string
		cfg       Config
		available []*Switch
		switches  []*Switch
		names     []string
	}{
		{
			name:     "empty_gets_one_slot",
			cfg:      Config{},
			switches: []*Switch{nil},
			names:    []string{""},
		},
		{
			name:     "names_padded",
			cfg:      Config{Switches: []*Switch{a, b}},
			switches: []*Switch{a, b},
			names:    []string{"a", "b"},
		},
		{
			name:     "names_truncated",
			cfg:      Config{Switches: []*Switch{a}, Names: []string{"x", "y", "z"}},
			switches: []*Switch{a},
			names:    []string{"a"},
		},
		{
			name:      "empty_slot_resolved_by_name",
			cfg:       Config{Switches: []*Switch{nil, a}, Names: []string{"b", ""}},
			available: []*Switch{a, b},
			switches:  []*Switch{b, a},
			names:     []string{"b", "a"},
		},
		{
			name:      "unknown_name_left_empty",
			cfg:       Config{Switches: []*Switch{nil}, Names: []string{"missing"}},
			available: []*Switch{a},
			switches:  []*Switch{nil},
			names:     []string{"missing"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := c.cfg
			cfg.Validate(c.available...)
			if len(cfg.Switches) != len(c.switches) || len(cfg.Names) != len(c.names) {
				t.Fatalf("lengths: switches=%d names=%d", len(cfg.Switches), len(cfg.Names))
			}
			for i := range c.switches {
				if cfg.Switches[i] != c.switches[i] {
					t.Fatalf("slot %d: unexpected switch %v", i, cfg.Switches[i])
				}
				if cfg.Names[i] != c.names[i] {
					t.Fatalf("slot %d: name %q, want %q", i, cfg.Names[i], c.names[i])
				}
			}
		})
	}
}

func TestParseListenMode(t *testing.T) {
	for _, m := range []ListenMode{ListenDefault, ListenFirstFrameOnly} {
		got, err := ParseListenMode(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip %v: got %v err=%v", m, got, err)
		}
	}
	if _, err := ParseListenMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
