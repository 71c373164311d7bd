package component

// PlayerInput is filled from the keyboard each frame.
type PlayerInput struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
}

var PlayerInputComponent = NewComponent[PlayerInput]()

// Mover is a kinematic body moved by PlayerMoveSystem. Touching a hazard
// sends it back to its start.
type Mover struct {
	VX       float64
	VY       float64
	Grounded bool
	StartX   float64
	StartY   float64
}

var MoverComponent = NewComponent[Mover]()
