package rationale

import (
	"image/color"

	"honnef.co/go/curve"
)

// Category is the closed set of labels an asset is sorted into.
type Category string

const (
	CategoryUserResearch    Category = "User Research"
	CategoryStyleReferences Category = "Style References"
	CategorySketches        Category = "Sketches"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryUserResearch,
	CategoryStyleReferences,
	CategorySketches,
}

// Known reports whether c is one of Categories.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultLabelPrefix is prepended to the source name to form a connector label.
const DefaultLabelPrefix = "Influence: "

// Descriptor is one connector from a source anchor to the shared target.
type Descriptor struct {
	SourceID string
	Curve    curve.CubicBez
	Label    string
	Color    color.NRGBA
}

// Start is the source anchor.
func (d Descriptor) Start() curve.Point { return d.Curve.P0 }

// End is the target point.
func (d Descriptor) End() curve.Point { return d.Curve.P3 }

// RectLTWH builds a rectangle from a left/top origin and a size.
func RectLTWH(left, top, width, height float64) curve.Rect {
	return curve.NewRectFromOrigin(curve.Pt(left, top), curve.Sz(width, height))
}

// Builder turns a source rectangle and a target point into a Descriptor.
type Builder struct {
	Palette     Palette
	LabelPrefix string
}

// NewBuilder returns a builder with the default palette and label prefix.
func NewBuilder() Builder {
	return Builder{Palette: DefaultPalette(), LabelPrefix: DefaultLabelPrefix}
}

// Build computes the connector for one source. Control points ease out
// horizontally from the source centre and ease in horizontally to the target.
func (b Builder) Build(source curve.Rect, target curve.Point, category Category, name string) Descriptor {
	start := source.Center()
	half := (target.X - start.X) * 0.5

	return Descriptor{
		Curve: curve.CubicBez{
			P0: start,
			P1: curve.Pt(start.X+half, start.Y),
			P2: curve.Pt(target.X-half, target.Y),
			P3: target,
		},
		Label: b.LabelPrefix + name,
		Color: b.Palette.ColorFor(category),
	}
}

// Build uses the default builder.
func Build(source curve.Rect, target curve.Point, category Category, name string) Descriptor {
	return NewBuilder().Build(source, target, category, name)
}
