package component

// Camera is the view position. The game keeps exactly one, tagged with
// CameraTag.
type Camera struct {
	X    float64
	Y    float64
	Zoom float64
}

var CameraComponent = NewComponent[Camera]()

// CameraRelative places an entity from the camera: each axis is
// -camera/ratio + offset. A zero ratio pins that axis to the offset.
type CameraRelative struct {
	OffsetX float64
	OffsetY float64
	RatioX  float64
	RatioY  float64
}

var CameraRelativeComponent = NewComponent[CameraRelative]()
