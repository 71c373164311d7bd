package menu

// Input is one frame of menu input. The pressed fields are true only on
// the frame the key went down; the held fields stay true while it is down.
type Input struct {
	Up     bool
	Down   bool
	Left   bool
	Right  bool
	Select bool
	Cancel bool
	Pause  bool
	Erase  bool

	LeftHeld  bool
	RightHeld bool
}
