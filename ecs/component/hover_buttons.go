package component

import "github.com/milk9111/kandclay/prefabs"

// HoverButtons turns slots of an entity's skeleton into buttons.
type HoverButtons struct {
	Buttons []prefabs.ButtonSpec
	// Enabled gates press handling.
	Enabled bool
	// HoverEnabled gates hover-in and hover-out animations.
	HoverEnabled bool
	PressTrack   int
	// Hovered is the button under the pointer, or "".
	Hovered string
	// Pressing is the button whose press animation is still playing.
	Pressing string
	// Selected is the last pressed button. A selected button keeps its
	// hover-in pose when the pointer leaves it.
	Selected string
}

var HoverButtonsComponent = NewComponent[HoverButtons]()

// Button returns the button definition with the given name.
func (h *HoverButtons) Button(name string) (prefabs.ButtonSpec, bool) {
	for _, b := range h.Buttons {
		if b.Name == name {
			return b, true
		}
	}
	return prefabs.ButtonSpec{}, false
}
