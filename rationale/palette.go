package rationale

import "image/color"

var (
	colorEmerald = color.NRGBA{R: 0x34, G: 0xd3, B: 0x99, A: 0xff}
	colorIndigo  = color.NRGBA{R: 0x81, G: 0x8c, B: 0xf8, A: 0xff}
	colorAmber   = color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff}

	// NeutralColor is used for categories the palette does not know.
	NeutralColor = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
)

// Palette maps categories to connector colours.
type Palette struct {
	Colors  map[Category]color.NRGBA
	Default color.NRGBA
}

// DefaultPalette returns emerald/indigo/amber for the three categories and
// slate for everything else.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[Category]color.NRGBA{
			CategoryUserResearch:    colorEmerald,
			CategoryStyleReferences: colorIndigo,
			CategorySketches:        colorAmber,
		},
		Default: NeutralColor,
	}
}

// ColorFor never fails: unknown categories, and a palette with no default,
// both resolve to a visible colour.
func (p Palette) ColorFor(c Category) color.NRGBA {
	if col, ok := p.Colors[c]; ok && col.A != 0 {
		return col
	}
	if p.Default.A != 0 {
		return p.Default
	}
	return NeutralColor
}

// With returns a copy of p with c mapped to col.
func (p Palette) With(c Category, col color.NRGBA) Palette {
	colors := make(map[Category]color.NRGBA, len(p.Colors)+1)
	for k, v := range p.Colors {
		colors[k] = v
	}
	colors[c] = col
	return Palette{Colors: colors, Default: p.Default}
}
