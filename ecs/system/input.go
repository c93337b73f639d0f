package system

import (
	"math"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
)

const (
	doubleClickFrames = 18
	doubleClickSlop   = 6
)

// clickTracker turns presses into double clicks.
type clickTracker struct {
	lastFrame int
	lastX     float64
	lastY     float64
	armed     bool
}

func (c *clickTracker) press(frame int, x, y float64) bool {
	double := c.armed &&
		frame-c.lastFrame <= doubleClickFrames &&
		math.Hypot(x-c.lastX, y-c.lastY) <= doubleClickSlop
	if double {
		c.armed = false
		return true
	}
	c.armed = true
	c.lastFrame, c.lastX, c.lastY = frame, x, y
	return false
}

// InputSystem copies ebiten's pointer and keyboard state into the Input
// component.
type InputSystem struct {
	frame  int
	clicks clickTracker
	runes  []rune
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputOf returns the shared input state, creating its entity on first use.
func InputOf(w *ecs.World) *component.Input {
	if e, ok := ecs.First(w, component.InputComponent); ok {
		in, _ := ecs.Get(w, e, component.InputComponent)
		return in
	}
	in := &component.Input{}
	_ = ecs.Add(w, ecs.CreateEntity(w), component.InputComponent, in)
	return in
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	i.frame++
	in := InputOf(w)

	cx, cy := ebiten.CursorPosition()
	in.X, in.Y = float64(cx), float64(cy)
	in.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.DoubleClick = false
	if in.JustPressed {
		in.DoubleClick = i.clicks.press(i.frame, in.X, in.Y)
	}
	in.OverUI = ebuiinput.UIHovered

	i.runes = ebiten.AppendInputChars(i.runes[:0])
	in.Runes = i.runes
	in.Backspace = repeating(ebiten.KeyBackspace)
	in.Delete = inpututil.IsKeyJustPressed(ebiten.KeyDelete)
	in.Escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.Enter = repeating(ebiten.KeyEnter)

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	in.Paste = ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV)
	if in.Paste {
		in.Runes = in.Runes[:0]
	}

	_, wy := ebiten.Wheel()
	in.Wheel = wy
}

// repeating reports a press and then key repeat after a short hold.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%4 == 0)
}
