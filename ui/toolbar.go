package ui

import (
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/traceable/studio"
)

var modes = []studio.Mode{studio.ModeTranslate, studio.ModeRotate, studio.ModeScale}

// ModeLabel is the toolbar caption for an edit mode.
func ModeLabel(m studio.Mode) string {
	switch m {
	case studio.ModeRotate:
		return "Rotate"
	case studio.ModeScale:
		return "Scale"
	default:
		return "Move"
	}
}

// ShapeLabel is the toolbar caption for adding a shape.
func ShapeLabel(s studio.Shape) string {
	name := string(s)
	if name == "" {
		return ""
	}
	return "+ " + strings.ToUpper(name[:1]) + name[1:]
}

type toolbar struct {
	container *widget.Container
	group     *widget.RadioGroup
	modeBtns  []*widget.Button
	deleteBtn *widget.Button
	maxBtn    *widget.Button
	suppress  bool
}

func newToolbar(faces Faces, cb Callbacks) *toolbar {
	tb := &toolbar{}
	tb.container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 40),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Left: 6, Right: 6, Bottom: 4}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
	)

	button := func(label string, handler func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(buttonImage()),
			widget.ButtonOpts.Text(label, &faces.Regular, buttonTextColor()),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(32, 32),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if handler != nil {
					handler()
				}
			}),
		)
	}

	for _, m := range modes {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(buttonImage()),
			widget.ButtonOpts.Text(ModeLabel(m), &faces.Regular, buttonTextColor()),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(32, 32),
			),
		)
		tb.modeBtns = append(tb.modeBtns, btn)
		tb.container.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(tb.modeBtns))
	for _, b := range tb.modeBtns {
		elements = append(elements, b)
	}
	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if tb.suppress || cb.OnMode == nil {
				return
			}
			for idx, b := range tb.modeBtns {
				if args.Active == b {
					cb.OnMode(modes[idx])
					return
				}
			}
		}),
	)

	tb.deleteBtn = widget.NewButton(
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text("Delete", &faces.Regular, &widget.ButtonTextColor{
			Idle:     dangerColor,
			Hover:    dangerColor,
			Pressed:  dangerColor,
			Disabled: disabledInk,
		}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(32, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if cb.OnDelete != nil {
				cb.OnDelete()
			}
		}),
	)
	tb.deleteBtn.GetWidget().Disabled = true
	tb.container.AddChild(tb.deleteBtn)

	for _, s := range studio.Shapes {
		shape := s
		tb.container.AddChild(button(ShapeLabel(shape), func() {
			if cb.OnAdd != nil {
				cb.OnAdd(shape)
			}
		}))
	}

	tb.maxBtn = button("Maximize", cb.OnMaximize)
	tb.container.AddChild(tb.maxBtn)
	return tb
}

func (tb *toolbar) refresh(s State) {
	tb.deleteBtn.GetWidget().Disabled = !s.Selected
	if text := tb.maxBtn.Text(); text != nil {
		text.Label = "Maximize"
		if s.Maximized {
			text.Label = "Restore"
		}
	}
	for idx, m := range modes {
		if m == s.Mode {
			tb.suppress = true
			tb.group.SetActive(tb.modeBtns[idx])
			tb.suppress = false
			break
		}
	}
}
