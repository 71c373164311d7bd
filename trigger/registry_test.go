package trigger

import (
	"errors"
	"testing"
)

func TestRegistryAutoStopsListenerWithoutHook(t *testing.T) {
	reg := quietRegistry()
	l := NewListener("idle", Config{Switches: []*Switch{NewSwitch("s")}}, nil)
	reg.Register(l)

	if _, ok := l.Runner(); !ok {
		t.Fatalf("register should start a runner")
	}
	for i := 0; i < 3; i++ {
		reg.DriveFrame(1.0 / 60)
	}
	if _, ok := l.Runner(); ok {
		t.Fatalf("listener without an update hook should have stopped its runner")
	}
	if !reg.Registered(l) {
		t.Fatalf("auto stop should not unregister the listener")
	}
}

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	reg := quietRegistry()
	l := NewListener("l", Config{}, noop)

	if !reg.Register(l) {
		t.Fatalf("first register should add")
	}
	first, _ := l.Runner()
	if reg.Register(l) {
		t.Fatalf("second register should be a no-op")
	}
	if second, _ := l.Runner(); second != first {
		t.Fatalf("second register should keep the running runner")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 listener, got %d", reg.Len())
	}
}

func TestReRegisterStartsClean(t *testing.T) {
	s := NewSwitch("s")
	reg := quietRegistry()
	l := NewListener("l", Config{Switches: []*Switch{s}, Mode: ListenFirstFrameOnly}, noop)
	l.Enable(reg)

	s.Set(true)
	reg.DriveFrame(0.1)
	if !l.IsActivated() {
		t.Fatalf("expected activation edge")
	}
	old, _ := l.Runner()

	l.Disable(reg)
	if reg.Registered(l) {
		t.Fatalf("disable should unregister")
	}
	if !old.Stopped() || l.IsActivated() {
		t.Fatalf("disable should stop and discard the runner")
	}

	l.Enable(reg)
	fresh, ok := l.Runner()
	if !ok || fresh == old {
		t.Fatalf("re-register should produce a fresh runner")
	}
	if fresh.IsActivated() || fresh.ActivatedOnCurrentFrame() || fresh.DeactivatedOnCurrentFrame() {
		t.Fatalf("fresh runner carries residual state")
	}
}

func TestRegistryDriveOrderAndUnregisterDuringFrame(t *testing.T) {
	reg := quietRegistry()
	var order []string

	var second *Listener
	first := NewListener("first", Config{}, func(l *Listener) {
		order = append(order, l.Name)
		reg.Unregister(second)
	})
	second = NewListener("second", Config{}, func(l *Listener) {
		order = append(order, l.Name)
	})
	third := NewListener("third", Config{}, func(l *Listener) {
		order = append(order, l.Name)
	})

	reg.Register(first)
	reg.Register(second)
	reg.Register(third)
	reg.DriveFrame(0.1)

	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Fatalf("unexpected update order %v", order)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 listeners after unregister, got %d", reg.Len())
	}
}

func TestRegistryIgnoresNegativeDelta(t *testing.T) {
	reg := quietRegistry()
	reg.DriveFrame(0.5)
	reg.DriveFrame(-1)
	if reg.Now() != 0.5 {
		t.Fatalf("clock = %v, want 0.5", reg.Now())
	}
}

func TestStoppedListenerRestartsWhileRegistered(t *testing.T) {
	s := NewSwitch("s")
	reg := quietRegistry()
	l := NewListener("idle", Config{Switches: []*Switch{s}}, nil)
	reg.Register(l)
	reg.DriveFrame(0.1)
	if _, ok := l.Runner(); ok {
		t.Fatalf("expected the hookless listener to stop its runner")
	}

	if err := l.Pause(1); err != nil {
		t.Fatalf("Pause on a registered listener = %v", err)
	}
	s.Set(true)
	reg.DriveFrame(0.1)

	rn, ok := l.Runner()
	if !ok || !rn.Paused() {
		t.Fatalf("expected a restarted runner suspended by the pause")
	}
	if !l.IsActivated() {
		t.Fatalf("restarted runner should have polled the active switch")
	}

	reg.Unregister(l)
	if err := l.Pause(1); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Pause after unregister = %v, want ErrNotRunning", err)
	}
	if l.IsActivated() {
		t.Fatalf("unregistered listener should read inactive")
	}
	if _, ok := l.Runner(); ok {
		t.Fatalf("reading an unregistered listener must not start a runner")
	}
}

func TestHooksSeeEveryListenerPolled(t *testing.T) {
	s := NewSwitch("s")
	reg := quietRegistry()

	var later *Listener
	var seen []bool
	early := NewListener("early", Config{}, func(*Listener) {
		seen = append(seen, later.ActivatedOnCurrentFrame())
	})
	later = NewListener("later", Config{Switches: []*Switch{s}, Mode: ListenFirstFrameOnly}, noop)
	reg.Register(early)
	reg.Register(later)

	s.Set(true)
	reg.DriveFrame(0.1)
	s.Set(true)
	reg.DriveFrame(0.1)

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("early hook should read the later listener's edge on the same frame, got %v", seen)
	}
}
