package component

// Transform places a skeleton in its viewport's world. Systems copy it onto
// the skeleton root every frame, so screens move skeletons by editing it.
type Transform struct {
	X      float32
	Y      float32
	ScaleX float32
	ScaleY float32
}

var TransformComponent = NewComponent[Transform]()
