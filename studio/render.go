package studio

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	backgroundColor = color.NRGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff}
	cellColor       = color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	sectionColor    = color.NRGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff}
	wireColor       = color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	selectedColor   = color.NRGBA{R: 0x81, G: 0x8c, B: 0xf8, A: 0xff}
)

const gridHalf = 5

// Draw paints the ground grid and every object into dst, which must be the
// viewport-sized sub image.
func (v *View) Draw(dst *ebiten.Image) {
	if v == nil || v.Camera == nil || dst == nil {
		return
	}
	b := dst.Bounds()
	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	vector.FillRect(dst, float32(ox), float32(oy), float32(b.Dx()), float32(b.Dy()), backgroundColor, false)

	line := func(a, c r3.Vec, width float32, col color.Color) {
		ax, ay, ok := v.Camera.Project(a, v.W, v.H)
		if !ok {
			return
		}
		cx, cy, ok := v.Camera.Project(c, v.W, v.H)
		if !ok {
			return
		}
		vector.StrokeLine(dst, float32(ox+ax), float32(oy+ay), float32(ox+cx), float32(oy+cy), width, col, true)
	}

	for i := -gridHalf; i <= gridHalf; i++ {
		col, width := cellColor, float32(0.5)
		if i%5 == 0 {
			col, width = sectionColor, 1
		}
		f := float64(i)
		line(r3.Vec{X: f, Z: -gridHalf}, r3.Vec{X: f, Z: gridHalf}, width, col)
		line(r3.Vec{X: -gridHalf, Z: f}, r3.Vec{X: gridHalf, Z: f}, width, col)
	}

	selected := v.Scene.SelectedID()
	for _, obj := range v.Scene.Objects() {
		col, width := color.Color(wireColor), float32(1.5)
		if obj.ID == selected {
			col, width = selectedColor, 2.5
		} else if obj.Color != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
			col = obj.Color
		}
		for _, e := range Wireframe(obj.Shape) {
			line(obj.World(e[0]), obj.World(e[1]), width, col)
		}
	}
}
