package system

import (
	"github.com/milk9111/kzzzt/common"
	"github.com/milk9111/kzzzt/ecs"
	"github.com/milk9111/kzzzt/ecs/component"
	"github.com/milk9111/kzzzt/save"
)

// CompleteLevelSystem publishes EventLevelComplete on the rising edge of a
// CompleteLevelOnTrigger entity's trigger. Each entity requests it once.
type CompleteLevelSystem struct{}

func NewCompleteLevelSystem() *CompleteLevelSystem {
	return &CompleteLevelSystem{}
}

func (s *CompleteLevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CompleteLevelOnTriggerComponent.Kind(), func(e ecs.Entity, c *component.CompleteLevelOnTrigger) {
		if c.Requested {
			return
		}
		sig := signalOf(w, e)
		if sig == nil || !sig.ActivatedOnCurrentFrame() {
			return
		}
		c.Requested = true
		w.Events().Push(ecs.Event{Type: ecs.EventLevelComplete, Source: e})
	})
}

// alertDuration is how long a checkpoint notice stays up, in seconds.
const alertDuration = 1.5

// CheckpointSystem stores the checkpoint in the live progress on the rising
// edge of its trigger and spawns the checkpoint's notice.
type CheckpointSystem struct {
	progress *save.Progress
}

func NewCheckpointSystem(progress *save.Progress) *CheckpointSystem {
	return &CheckpointSystem{progress: progress}
}

func (s *CheckpointSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CheckpointComponent.Kind(), func(e ecs.Entity, c *component.Checkpoint) {
		sig := signalOf(w, e)
		if sig == nil || !sig.ActivatedOnCurrentFrame() {
			return
		}
		if s.progress != nil {
			s.progress.RecordCheckpoint(c.Index)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventCheckpoint, Source: e, Data: c.Index})

		if c.Alert == "" {
			return
		}
		alert := ecs.CreateEntity(w)
		pos := component.Transform{}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			pos = *t
		}
		_ = ecs.Add(w, alert, component.TransformComponent.Kind(), &pos)
		_ = ecs.Add(w, alert, component.AlertComponent.Kind(), &component.Alert{Text: c.Alert, Remaining: alertDuration})
		w.Events().Push(ecs.Event{Type: ecs.EventAlert, Source: alert, Data: c.Alert})
	})
}

// AlertSystem counts alerts down and removes them when they expire.
type AlertSystem struct{}

func NewAlertSystem() *AlertSystem {
	return &AlertSystem{}
}

func (s *AlertSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.AlertComponent.Kind(), func(e ecs.Entity, a *component.Alert) {
		if common.UseAsTimer(&a.Remaining, dt) {
			ecs.DestroyEntity(w, e)
		}
	})
}
