package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	panelColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xf2}
	borderColor  = color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	inkColor     = color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	mutedColor   = color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	accentColor  = color.NRGBA{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff}
	accentSoft   = color.NRGBA{R: 0xe0, G: 0xe7, B: 0xff, A: 0xff}
	dangerColor  = color.NRGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff}
	disabledInk  = color.NRGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff}
	buttonIdle   = color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	buttonHover  = color.NRGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff}
	buttonActive = color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
)

// Faces are the fonts shared by the widgets and the board renderer.
type Faces struct {
	Regular text.Face
	Bold    text.Face
	Small   text.Face
	// Fixed is a bitmap face for debug overlays.
	Fixed text.Face
}

func LoadFaces() (Faces, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return Faces{}, fmt.Errorf("ui: load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return Faces{}, fmt.Errorf("ui: load bold font: %w", err)
	}
	return Faces{
		Regular: &text.GoTextFace{Source: regular, Size: 14},
		Bold:    &text.GoTextFace{Source: bold, Size: 16},
		Small:   &text.GoTextFace{Source: regular, Size: 11},
		Fixed:   text.NewGoXFace(basicfont.Face7x13),
	}, nil
}

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:         solidNineSlice(buttonIdle),
		Hover:        solidNineSlice(buttonHover),
		Pressed:      solidNineSlice(buttonActive),
		Disabled:     solidNineSlice(buttonIdle),
	}
}

func buttonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     inkColor,
		Hover:    accentColor,
		Pressed:  accentColor,
		Disabled: disabledInk,
	}
}

func newTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          inkColor,
				Selected:            accentColor,
				DisabledUnselected:  mutedColor,
				DisabledSelected:    mutedColor,
				SelectingBackground: accentSoft,
				SelectedBackground:  accentSoft,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(panelColor),
				Mask: solidNineSlice(panelColor),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image:     buttonImage(),
			TextFace:  fontFace,
			TextColor: buttonTextColor(),
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(borderColor),
				Hover: solidNineSlice(borderColor),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(mutedColor),
				Hover:   solidNineSlice(inkColor),
				Pressed: solidNineSlice(inkColor),
			},
		},
	}
}
