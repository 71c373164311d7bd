package component

import "github.com/jakecoffman/cp"

type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t Transform) Vector() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()
