package rationale

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestBuildExample(t *testing.T) {
	src := RectLTWH(100, 100, 240, 120)
	got := Build(src, curve.Pt(500, 300), CategorySketches, "moodboard.png")

	want := Descriptor{
		Curve: curve.CubicBez{
			P0: curve.Pt(220, 160),
			P1: curve.Pt(360, 160),
			P2: curve.Pt(360, 300),
			P3: curve.Pt(500, 300),
		},
		Label: "Influence: moodboard.png",
		Color: color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff},
	}
	diff(t, want, got)
}

func TestBuildEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		rect   curve.Rect
		target curve.Point
	}{
		{"target_right", RectLTWH(0, 0, 100, 50), curve.Pt(800, 400)},
		{"target_left", RectLTWH(900, 200, 240, 180), curve.Pt(10, 20)},
		{"target_inside", RectLTWH(-50, -50, 100, 100), curve.Pt(0, 0)},
		{"zero_size", RectLTWH(33, 44, 0, 0), curve.Pt(-12.5, 7.25)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := Build(c.rect, c.target, CategoryUserResearch, "x")
			if d.Start() != c.rect.Center() {
				t.Fatalf("start = %v, want centre %v", d.Start(), c.rect.Center())
			}
			if d.End() != c.target {
				t.Fatalf("end = %v, want %v", d.End(), c.target)
			}
			if d.Curve.P1.Y != d.Start().Y {
				t.Fatalf("control 1 should keep the source height, got %v", d.Curve.P1)
			}
			if d.Curve.P2.Y != c.target.Y {
				t.Fatalf("control 2 should keep the target height, got %v", d.Curve.P2)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder()
	src := RectLTWH(12.5, 80, 240, 133)
	target := curve.Pt(640.25, 360.75)

	first := b.Build(src, target, CategoryStyleReferences, "palette.jpg")
	for i := 0; i < 10; i++ {
		diff(t, first, b.Build(src, target, CategoryStyleReferences, "palette.jpg"))
	}
}

func TestColorForIsTotal(t *testing.T) {
	p := DefaultPalette()
	inputs := append(append([]Category(nil), Categories...), "Moodboards", "", "user research")

	for _, c := range inputs {
		t.Run(string(c), func(t *testing.T) {
			col := p.ColorFor(c)
			if col.A == 0 {
				t.Fatalf("colour for %q is empty", c)
			}
			if !c.Known() && col != NeutralColor {
				t.Fatalf("unknown category %q got %v, want neutral", c, col)
			}
		})
	}

	if got := (Palette{}).ColorFor(CategorySketches); got != NeutralColor {
		t.Fatalf("empty palette should fall back to neutral, got %v", got)
	}
}

func TestPaletteWith(t *testing.T) {
	base := DefaultPalette()
	red := color.NRGBA{R: 0xff, A: 0xff}
	changed := base.With(CategorySketches, red)

	if changed.ColorFor(CategorySketches) != red {
		t.Fatalf("override not applied")
	}
	if base.ColorFor(CategorySketches) == red {
		t.Fatalf("With must not mutate the receiver")
	}
}
