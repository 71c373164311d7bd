package component

// CompleteLevelOnTrigger asks the game to finish the level on the rising
// edge of the entity's trigger.
type CompleteLevelOnTrigger struct {
	Requested bool
}

var CompleteLevelOnTriggerComponent = NewComponent[CompleteLevelOnTrigger]()

// Checkpoint records itself as the player's respawn point on the rising
// edge of the entity's trigger.
type Checkpoint struct {
	Index int
	// Alert, when set, is the notice shown at the checkpoint on save.
	Alert string
}

var CheckpointComponent = NewComponent[Checkpoint]()

// Alert is a short-lived notice spawned by gameplay, e.g. "checkpoint saved".
type Alert struct {
	Text      string
	Remaining float64
}

var AlertComponent = NewComponent[Alert]()
