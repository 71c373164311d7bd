package trigger

import (
	"errors"
	"fmt"

	"github.com/milk9111/kzzzt/common"
)

var (
	ErrInvalidPause = fmt.Errorf("trigger: pause seconds should be greater than 0: %w", common.ErrInvalidArgument)
	ErrNotRunning   = errors.New("trigger: listener has no running runner")
)

// wakeEpsilon absorbs float drift when frame deltas are summed into the clock.
const wakeEpsilon = 1e-6

// Runner aggregates a listener's switches into one signal. It polls once
// per tick, or once per pause interval after Pause, and resets its
// accumulators right before each poll.
type Runner struct {
	listener *Listener

	active                    bool
	activatedOnCurrentFrame   bool
	deactivatedOnCurrentFrame bool

	pauseTime float64
	paused    bool
	wake      float64
	polled    bool
	stopped   bool
}

func newRunner(l *Listener) *Runner {
	return &Runner{listener: l}
}

// Tick advances the runner to time now (seconds on the registry clock).
// While suspended it does nothing, so the accumulators stay frozen at their
// last values.
func (r *Runner) Tick(now float64) {
	if r == nil || r.stopped || r.listener == nil {
		return
	}
	if r.polled && now+wakeEpsilon < r.wake {
		return
	}

	r.paused = false
	r.active = false
	r.activatedOnCurrentFrame = false
	r.deactivatedOnCurrentFrame = false

	r.poll(&r.listener.Config)
	r.polled = true

	if r.pauseTime > 0 {
		r.paused = true
		r.wake = now + r.pauseTime
		r.pauseTime = 0
		return
	}
	r.wake = now
}

func (r *Runner) poll(cfg *Config) {
	for _, sw := range cfg.Switches {
		if sw == nil {
			continue
		}

		switch cfg.Mode {
		case ListenDefault:
			r.active = r.active || sw.IsActivated()
		case ListenFirstFrameOnly:
			if sw.ActivatedOnCurrentFrame() {
				r.setSingleFrameBit(!cfg.FlipActivation)
			}
		}

		if cfg.ListenToDeactivation && sw.DeactivatedOnCurrentFrame() {
			r.setSingleFrameBit(cfg.FlipActivation)
		}
	}
}

func (r *Runner) setSingleFrameBit(activation bool) {
	if activation {
		r.activatedOnCurrentFrame = true
	} else {
		r.deactivatedOnCurrentFrame = true
	}
}

// IsActivated is (active OR activated-edge) XOR flip.
func (r *Runner) IsActivated() bool {
	if r == nil || r.listener == nil {
		return false
	}
	return (r.active || r.activatedOnCurrentFrame) != r.listener.Config.FlipActivation
}

func (r *Runner) ActivatedOnCurrentFrame() bool {
	return r != nil && r.activatedOnCurrentFrame
}

func (r *Runner) DeactivatedOnCurrentFrame() bool {
	return r != nil && r.deactivatedOnCurrentFrame
}

// Paused reports whether the runner is inside a timed suspension.
func (r *Runner) Paused() bool {
	return r != nil && r.paused
}

func (r *Runner) Stopped() bool {
	return r == nil || r.stopped
}

// Pause makes the next suspension last seconds instead of one tick. A second
// call before that suspension starts replaces the first.
func (r *Runner) Pause(seconds float64) error {
	if seconds <= 0 {
		return ErrInvalidPause
	}
	if r == nil || r.stopped {
		return ErrNotRunning
	}
	r.pauseTime = seconds
	return nil
}

// Stop halts polling for good and drops the runner from its listener.
func (r *Runner) Stop() {
	if r == nil || r.stopped {
		return
	}
	r.stopped = true
	r.paused = false
	if r.listener != nil && r.listener.runner == r {
		r.listener.runner = nil
	}
}
