package system

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/rationale"
	"honnef.co/go/curve"
)

var arrowColor = color.NRGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff}

const (
	arrowLength = 10
	arrowWidth  = 7
	dotRadius   = 3
	hoverRadius = 8
)

// ConnectorStyle is how connectors are stroked.
type ConnectorStyle struct {
	Dash      []float64
	Width     float64
	Opacity   float64
	GlowWidth float64
	Tolerance float64
}

func StyleFromConfig(c config.ConnectorConfig) ConnectorStyle {
	return ConnectorStyle{
		Dash:      slices.Clone(c.Dash),
		Width:     c.Width,
		Opacity:   c.Opacity,
		GlowWidth: c.GlowWidth,
		Tolerance: c.Tolerance,
	}
}

// Segment is one straight dash piece.
type Segment struct {
	A, B curve.Point
}

// DashSegments flattens d's curve into straight pieces, dashed when the
// style has a usable dash pattern. Pieces are appended to buf.
func (st ConnectorStyle) DashSegments(buf []Segment, d rationale.Descriptor) []Segment {
	tol := st.Tolerance
	if tol <= 0 {
		tol = 0.25
	}
	path := d.Curve.PathElements(tol)
	if validDash(st.Dash) {
		path = curve.Dash(path, 0, st.Dash)
	}

	var last curve.Point
	for el := range curve.Flatten(path, tol) {
		switch el.Kind {
		case curve.MoveToKind:
			last = el.P0
		case curve.LineToKind:
			buf = append(buf, Segment{A: last, B: el.P0})
			last = el.P0
		}
	}
	return buf
}

func validDash(d []float64) bool {
	if len(d) == 0 {
		return false
	}
	sum := 0.0
	for _, v := range d {
		if v < 0 {
			return false
		}
		sum += v
	}
	return sum > 0
}

// Arrowhead returns the three corners of the arrow at d's end, pointing
// along the end tangent.
func Arrowhead(d rationale.Descriptor) [3]curve.Point {
	_, end := d.Curve.Tangents()
	dir := end
	if dir.Hypot2() == 0 {
		dir = curve.Vec(1, 0)
	}
	dir = dir.Normalize()
	normal := curve.Vec(-dir.Y, dir.X)

	tip := d.End()
	base := tip.Translate(dir.Mul(-arrowLength))
	return [3]curve.Point{
		tip,
		base.Translate(normal.Mul(arrowWidth / 2)),
		base.Translate(normal.Mul(-arrowWidth / 2)),
	}
}

// ConnectorRenderer draws the tracker's current connectors. Segment
// buffers are kept per reconciler slot and reused between frames.
type ConnectorRenderer struct {
	Style ConnectorStyle
	Face  text.Face

	buffers [][]Segment
	white   *ebiten.Image
}

func NewConnectorRenderer(style ConnectorStyle, face text.Face) *ConnectorRenderer {
	return &ConnectorRenderer{Style: style, Face: face}
}

func (r *ConnectorRenderer) buffer(slot int) []Segment {
	for len(r.buffers) <= slot {
		r.buffers = append(r.buffers, nil)
	}
	return r.buffers[slot][:0]
}

// Draw strokes every slot. hoverX and hoverY is the cursor; the label of a
// connector whose source dot is under it is drawn next to the dot.
func (r *ConnectorRenderer) Draw(screen *ebiten.Image, slots []rationale.Slot, hoverX, hoverY float64) {
	for _, slot := range slots {
		d := slot.Descriptor
		segs := r.Style.DashSegments(r.buffer(slot.Index), d)
		r.buffers[slot.Index] = segs

		glow := withAlpha(d.Color, 0.12)
		stroke := withAlpha(d.Color, r.Style.Opacity)
		for _, s := range segs {
			if r.Style.GlowWidth > 0 {
				vector.StrokeLine(screen, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), float32(r.Style.GlowWidth), glow, true)
			}
			vector.StrokeLine(screen, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), float32(r.Style.Width), stroke, true)
		}

		r.drawArrow(screen, Arrowhead(d), withAlpha(arrowColor, r.Style.Opacity))

		start := d.Start()
		vector.FillCircle(screen, float32(start.X), float32(start.Y), dotRadius, d.Color, true)
		if r.Face != nil && math.Hypot(hoverX-start.X, hoverY-start.Y) <= hoverRadius {
			op := &text.DrawOptions{}
			op.GeoM.Translate(start.X+hoverRadius, start.Y-hoverRadius*2)
			op.ColorScale.ScaleWithColor(arrowColor)
			text.Draw(screen, d.Label, r.Face, op)
		}
	}
}

func (r *ConnectorRenderer) drawArrow(screen *ebiten.Image, pts [3]curve.Point, col color.NRGBA) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	cr, cg, cb, ca := float32(col.R)/0xff, float32(col.G)/0xff, float32(col.B)/0xff, float32(col.A)/0xff
	vs := make([]ebiten.Vertex, 0, 3)
	for _, p := range pts {
		vs = append(vs, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	screen.DrawTriangles(vs, []uint16{0, 1, 2}, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func withAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}
