package component

import "github.com/jakecoffman/cp"

// Body is an axis-aligned box centered on the entity's transform. It is the
// shape trigger zones test against; physics itself lives in the host engine.
type Body struct {
	W float64
	H float64
}

// Bounds returns the box at t.
func (b Body) Bounds(t Transform) cp.BB {
	return cp.NewBBForExtents(t.Vector(), b.W/2, b.H/2)
}

var BodyComponent = NewComponent[Body]()
