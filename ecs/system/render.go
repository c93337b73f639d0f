package system

import (
	"image"
	"image/color"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/rationale"
	"github.com/milk9111/traceable/studio"
	"golang.org/x/image/colornames"
)

var (
	canvasColor     = color.NRGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff}
	gridDotColor    = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0x66}
	cardBorder      = color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	cardFocusBorder = color.NRGBA{R: 0xa5, G: 0xb4, B: 0xfc, A: 0xff}
	textDark        = color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	textMuted       = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	noteFill        = color.NRGBA{R: 0xfe, G: 0xf9, B: 0xc3, A: 0xff}
	noteHeader      = color.NRGBA{R: 0xfd, G: 0xe6, B: 0x8a, A: 0xff}
	noteText        = color.NRGBA{R: 0x42, G: 0x20, B: 0x06, A: 0xff}
	notePlaceholder = color.NRGBA{R: 0xca, G: 0x8a, B: 0x04, A: 0x80}
	studioHeader    = color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
)

const (
	studioTitle      = "Massing Studio"
	studioHelp       = "Double click header to maximize • Select an object to edit"
	notePlaceholderS = "Type an idea..."
	lineHeight       = 16
)

// RenderSystem draws the board. Cards and notes are ordered by RenderLayer,
// the connector overlay sits above them and the studio window above that.
type RenderSystem struct {
	layout     *Layout
	view       *studio.View
	rationale  *RationaleSystem
	connectors *ConnectorRenderer
	palette    rationale.Palette

	Face  text.Face
	Small text.Face

	GridSpacing float64
	ShowHelp    bool
}

func NewRenderSystem(layout *Layout, view *studio.View, rs *RationaleSystem, connectors *ConnectorRenderer, face, small text.Face) *RenderSystem {
	return &RenderSystem{
		layout:      layout,
		view:        view,
		rationale:   rs,
		connectors:  connectors,
		palette:     rationale.DefaultPalette(),
		Face:        face,
		Small:       small,
		GridSpacing: 20,
		ShowHelp:    true,
	}
}

// SetPalette changes the category stripe colours on cards.
func (r *RenderSystem) SetPalette(p rationale.Palette) {
	r.palette = p
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	screen.Fill(canvasColor)
	r.drawGrid(screen)

	entities := BoardOrder(w)
	var studioEntity ecs.Entity
	for _, e := range entities {
		switch {
		case ecs.Has(w, e, component.StudioComponent):
			studioEntity = e
		case ecs.Has(w, e, component.NoteComponent):
			r.drawNote(w, e, screen)
		case ecs.Has(w, e, component.AssetComponent):
			r.drawCard(w, e, screen)
		}
	}

	if r.rationale != nil && r.connectors != nil {
		in := InputOf(w)
		r.connectors.Draw(screen, r.rationale.Slots(), in.X, in.Y)
	}

	if studioEntity.Valid() {
		r.drawStudio(w, studioEntity, screen)
	}
}

// BoardOrder returns the drawable entities back to front.
func BoardOrder(w *ecs.World) []ecs.Entity {
	var entities []ecs.Entity
	ecs.ForEach2(w, component.TransformComponent, component.BoundsComponent, func(e ecs.Entity, _ *component.Transform, _ *component.Bounds) {
		entities = append(entities, e)
	})
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func (r *RenderSystem) drawGrid(screen *ebiten.Image) {
	step := r.GridSpacing
	if step <= 0 {
		return
	}
	b := screen.Bounds()
	for y := step; y < float64(b.Dy()); y += step {
		for x := step; x < float64(b.Dx()); x += step {
			vector.FillRect(screen, float32(x), float32(y), 1, 1, gridDotColor, false)
		}
	}
}

func (r *RenderSystem) drawCard(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	rect, ok := EntityRect(w, e)
	if !ok {
		return
	}
	a, _ := ecs.Get(w, e, component.AssetComponent)
	x, y := float32(rect.X0), float32(rect.Y0)
	cw, ch := float32(rect.Width()), float32(rect.Height())

	border, shadow := cardBorder, float32(3)
	if ecs.Has(w, e, component.HoveredComponent) {
		border, shadow = cardFocusBorder, 6
	}
	vector.FillRect(screen, x+shadow/2, y+shadow, cw, ch, color.NRGBA{A: 0x18}, false)
	vector.FillRect(screen, x, y, cw, ch, colornames.White, false)
	vector.StrokeRect(screen, x, y, cw, ch, 1, border, false)
	vector.FillRect(screen, x, y, 3, ch, r.palette.ColorFor(a.Category), false)

	body := ch - cardCaptionHeight
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent); ok && sprite.Image != nil {
		ib := sprite.Image.Bounds()
		if ib.Dx() > 0 && ib.Dy() > 0 {
			op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
			op.GeoM.Scale(float64(cw)/float64(ib.Dx()), float64(body)/float64(ib.Dy()))
			op.GeoM.Translate(rect.X0, rect.Y0)
			screen.DrawImage(sprite.Image, op)
		}
	} else if a.Preview != "" {
		r.drawLines(screen, r.Small, a.Preview, rect.X0+10, rect.Y0+8, int(body-8)/lineHeight, textDark)
	}

	r.drawText(screen, r.Small, a.Name, rect.X0+10, rect.Y1-cardCaptionHeight+7, textMuted)
}

func (r *RenderSystem) drawNote(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	rect, ok := EntityRect(w, e)
	if !ok {
		return
	}
	note, _ := ecs.Get(w, e, component.NoteComponent)
	x, y := float32(rect.X0), float32(rect.Y0)
	nw, nh := float32(rect.Width()), float32(rect.Height())

	vector.FillRect(screen, x+2, y+3, nw, nh, color.NRGBA{A: 0x18}, false)
	vector.FillRect(screen, x, y, nw, nh, noteFill, false)
	vector.FillRect(screen, x, y, nw, noteHeaderHeight, noteHeader, false)
	if ecs.Has(w, e, component.FocusedComponent) {
		vector.StrokeRect(screen, x, y, nw, nh, 2, cardFocusBorder, false)
	}

	box := noteCloseBox(rect)
	vector.StrokeLine(screen, float32(box.X0+4), float32(box.Y0+4), float32(box.X1-4), float32(box.Y1-4), 1.5, notePlaceholder, true)
	vector.StrokeLine(screen, float32(box.X1-4), float32(box.Y0+4), float32(box.X0+4), float32(box.Y1-4), 1.5, notePlaceholder, true)

	maxLines := int(rect.Height()-noteHeaderHeight-12) / lineHeight
	if note.Text == "" {
		r.drawText(screen, r.Face, notePlaceholderS, rect.X0+10, rect.Y0+noteHeaderHeight+8, notePlaceholder)
		return
	}
	r.drawLines(screen, r.Face, wrap(note.Text, 24), rect.X0+10, rect.Y0+noteHeaderHeight+8, maxLines, noteText)
}

func (r *RenderSystem) drawStudio(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	rect, ok := EntityRect(w, e)
	if !ok {
		return
	}
	x, y := float32(rect.X0), float32(rect.Y0)
	sw, sh := float32(rect.Width()), float32(rect.Height())

	vector.FillRect(screen, x+4, y+6, sw, sh, color.NRGBA{A: 0x24}, false)
	vector.FillRect(screen, x, y, sw, float32(r.layout.StudioHeader), studioHeader, false)
	r.drawText(screen, r.Face, studioTitle, rect.X0+16, rect.Y0+r.layout.StudioHeader/2-7, textDark)

	if vp, ok := r.layout.Viewport(w); ok && r.view != nil {
		sub := screen.SubImage(image.Rect(int(vp.X0), int(vp.Y0), int(vp.X1), int(vp.Y1))).(*ebiten.Image)
		r.view.Draw(sub)
		if r.ShowHelp {
			r.drawText(screen, r.Small, studioHelp, vp.X0+12, vp.Y1-22, textMuted)
		}
	}
	vector.StrokeRect(screen, x, y, sw, sh, 1, cardBorder, false)
}

func (r *RenderSystem) drawText(screen *ebiten.Image, face text.Face, s string, x, y float64, col color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, face, op)
}

func (r *RenderSystem) drawLines(screen *ebiten.Image, face text.Face, s string, x, y float64, limit int, col color.Color) {
	for i, line := range strings.Split(s, "\n") {
		if i >= limit {
			return
		}
		r.drawText(screen, face, line, x, y+float64(i*lineHeight), col)
	}
}

// wrap breaks s into lines of at most width runes, splitting on spaces where
// it can.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := []rune{}
		for _, word := range strings.SplitAfter(para, " ") {
			wr := []rune(word)
			for len(wr) > width {
				if len(line) > 0 {
					out = append(out, string(line))
					line = line[:0]
				}
				out = append(out, string(wr[:width]))
				wr = wr[width:]
			}
			if len(line)+utf8.RuneCountInString(strings.TrimRight(string(wr), " ")) > width && len(line) > 0 {
				out = append(out, strings.TrimRight(string(line), " "))
				line = line[:0]
			}
			line = append(line, wr...)
		}
		out = append(out, strings.TrimRight(string(line), " "))
	}
	return strings.Join(out, "\n")
}
