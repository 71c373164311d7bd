package trigger

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/milk9111/kzzzt/common"
)

func quietRegistry() *Registry {
	return NewRegistry(WithLogger(log.New(io.Discard, "", 0)))
}

func noop(*Listener) {}

func TestDefaultModeIsOrOfSwitches(t *testing.T) {
	for _, flip := range []bool{false, true} {
		a, b := NewSwitch("a"), NewSwitch("b")
		reg := quietRegistry()
		l := NewListener("door", Config{Switches: []*Switch{a, nil, b}, FlipActivation: flip}, noop)
		reg.Register(l)

		steps := [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}, {false, false}}
		for i, st := range steps {
			a.Set(st[0])
			b.Set(st[1])
			reg.DriveFrame(1.0 / 60)
			want := (st[0] || st[1]) != flip
			if got := l.IsActivated(); got != want {
				t.Fatalf("flip=%v step %d: IsActivated = %v, want %v", flip, i, got, want)
			}
		}
	}
}

func TestFirstFrameOnlyEdgeClearsNextTick(t *testing.T) {
	s := NewSwitch("s")
	reg := quietRegistry()
	l := NewListener("edge", Config{Switches: []*Switch{s}, Mode: ListenFirstFrameOnly}, noop)
	reg.Register(l)

	s.Set(true)
	reg.DriveFrame(0.1)
	if !l.ActivatedOnCurrentFrame() || !l.IsActivated() {
		t.Fatalf("expected activation edge on rising tick")
	}

	s.Set(true)
	reg.DriveFrame(0.1)
	if l.ActivatedOnCurrentFrame() || l.IsActivated() {
		t.Fatalf("edge should clear on the following tick while the switch stays on")
	}

	s.Set(false)
	reg.DriveFrame(0.1)
	if l.DeactivatedOnCurrentFrame() {
		t.Fatalf("deactivation edge should be ignored unless requested")
	}
}

func TestDeactivationEdgeAndFlip(t *testing.T) {
	cases := []struct {
		name        string
		flip        bool
		onRising    [2]bool // activated, deactivated bits on the rising tick
		onFalling   [2]bool
		activeOnRis bool
	}{
		{"plain", false, [2]bool{true, false}, [2]bool{false, true}, true},
		{"flipped", true, [2]bool{false, true}, [2]bool{true, false}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSwitch("s")
			reg := quietRegistry()
			l := NewListener("edges", Config{
				Switches:             []*Switch{s},
				Mode:                 ListenFirstFrameOnly,
				ListenToDeactivation: true,
				FlipActivation:       c.flip,
			}, noop)
			reg.Register(l)

			s.Set(true)
			reg.DriveFrame(0.1)
			if l.ActivatedOnCurrentFrame() != c.onRising[0] || l.DeactivatedOnCurrentFrame() != c.onRising[1] {
				t.Fatalf("rising bits = %v/%v", l.ActivatedOnCurrentFrame(), l.DeactivatedOnCurrentFrame())
			}
			if l.IsActivated() != c.activeOnRis {
				t.Fatalf("rising IsActivated = %v", l.IsActivated())
			}

			s.Set(false)
			reg.DriveFrame(0.1)
			if l.ActivatedOnCurrentFrame() != c.onFalling[0] || l.DeactivatedOnCurrentFrame() != c.onFalling[1] {
				t.Fatalf("falling bits = %v/%v", l.ActivatedOnCurrentFrame(), l.DeactivatedOnCurrentFrame())
			}
		})
	}
}

func TestPauseRejectsNonPositive(t *testing.T) {
	reg := quietRegistry()
	l := NewListener("p", Config{Switches: []*Switch{NewSwitch("s")}}, noop)
	reg.Register(l)

	for _, secs := range []float64{0, -1} {
		err := l.Pause(secs)
		if !errors.Is(err, ErrInvalidPause) || !errors.Is(err, common.ErrInvalidArgument) {
			t.Fatalf("Pause(%v) = %v, want invalid argument", secs, err)
		}
	}

	rn, _ := l.Runner()
	if err := rn.Pause(0); !errors.Is(err, common.ErrInvalidArgument) {
		t.Fatalf("runner Pause(0) = %v", err)
	}
}

func TestPauseFreezesThenResumesFresh(t *testing.T) {
	s := NewSwitch("s")
	reg := quietRegistry()
	l := NewListener("p", Config{Switches: []*Switch{s}}, noop)
	reg.Register(l)

	s.Set(true)
	reg.DriveFrame(0.25) // now 0.25
	if !l.IsActivated() {
		t.Fatalf("expected active before pause")
	}
	if err := l.Pause(1.0); err != nil {
		t.Fatalf("Pause: %v", err)
	}

	reg.DriveFrame(0.25) // now 0.5: polls, then suspends until 1.5
	rn, _ := l.Runner()
	if !rn.Paused() || l.Listening() {
		t.Fatalf("expected runner paused after the next poll")
	}

	s.Set(false)
	for _, now := range []float64{0.75, 1.0, 1.25} {
		reg.DriveFrame(0.25)
		if reg.Now() != now {
			t.Fatalf("clock = %v, want %v", reg.Now(), now)
		}
		if !l.IsActivated() {
			t.Fatalf("at %v: activation should stay frozen while paused", now)
		}
	}

	reg.DriveFrame(0.25) // now 1.5: resume, reset, poll
	if rn.Paused() || !l.Listening() {
		t.Fatalf("expected runner resumed at 1.5")
	}
	if l.IsActivated() || l.ActivatedOnCurrentFrame() || l.DeactivatedOnCurrentFrame() {
		t.Fatalf("accumulators should be re-derived after the pause")
	}
}

func TestPauseLastCallWins(t *testing.T) {
	s := NewSwitch("s")
	reg := quietRegistry()
	l := NewListener("p", Config{Switches: []*Switch{s}}, noop)
	reg.Register(l)
	reg.DriveFrame(0.5)

	_ = l.Pause(5)
	_ = l.Pause(0.5)
	reg.DriveFrame(0.5) // now 1.0, suspended until 1.5
	rn, _ := l.Runner()
	if !rn.Paused() {
		t.Fatalf("expected paused")
	}
	reg.DriveFrame(0.5)
	if rn.Paused() {
		t.Fatalf("shorter pause should have won")
	}
}

func TestStoppedRunnerIsInert(t *testing.T) {
	s := NewSwitch("s")
	l := NewListener("x", Config{Switches: []*Switch{s}}, noop)
	rn := l.Start()
	rn.Stop()

	if _, ok := l.Runner(); ok {
		t.Fatalf("stop should detach the runner from its listener")
	}
	s.Set(true)
	rn.Tick(1)
	if rn.IsActivated() {
		t.Fatalf("stopped runner should not poll")
	}
	if err := rn.Pause(1); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Pause on stopped runner = %v", err)
	}
	if next := l.Start(); next == rn {
		t.Fatalf("expected a fresh runner after stop")
	}
}
