package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/kandclay/ecs"
	"github.com/milk9111/kandclay/ecs/component"
)

// InputSystem copies the mouse into the world's Pointer component.
type InputSystem struct {
	cursor  func() (int, int)
	pressed func() bool

	lastX, lastY int
	seen         bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{
		cursor: ebiten.CursorPosition,
		pressed: func() bool {
			return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		},
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	_, p, ok := ecs.First(w, component.PointerComponent.Kind())
	if !ok {
		p = &component.Pointer{}
		if err := ecs.Add(w, ecs.CreateEntity(w), component.PointerComponent.Kind(), p); err != nil {
			return
		}
	}

	x, y := i.cursor()
	p.Moved = i.seen && (x != i.lastX || y != i.lastY)
	p.X, p.Y = x, y
	p.Pressed = i.pressed()
	i.lastX, i.lastY = x, y
	i.seen = true
}
