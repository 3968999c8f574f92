package component

// Pointer is the mouse state for the current frame, in window pixels.
type Pointer struct {
	X, Y int
	// Moved is set when the position changed since the previous frame.
	Moved bool
	// Pressed is set only on the frame the left button went down.
	Pressed bool
}

var PointerComponent = NewComponent[Pointer]()
