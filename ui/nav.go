package ui

import (
	"github.com/ebitenui/ebitenui/widget"
)

const appTitle = "Traceable"

// RationaleLabel is the nav toggle's caption.
func RationaleLabel(visible bool) string {
	if visible {
		return "Logic Connected"
	}
	return "Show Rationale"
}

type navBar struct {
	container *widget.Container
	toggle    *widget.Button
	visible   bool
}

func newNavBar(faces Faces, sizes Sizes, cb Callbacks) *navBar {
	n := &navBar{}
	n.container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(1, sizes.NavHeight),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Left: 24, Right: 24}),
		)),
	)

	title := widget.NewText(
		widget.TextOpts.Text(appTitle, &faces.Bold, inkColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)
	n.container.AddChild(title)

	n.toggle = widget.NewButton(
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(RationaleLabel(false), &faces.Regular, buttonTextColor()),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 34)),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionEnd,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if cb.OnToggleRationale != nil {
				cb.OnToggleRationale(!n.visible)
			}
		}),
	)
	n.container.AddChild(n.toggle)
	return n
}

func (n *navBar) refresh(s State) {
	n.visible = s.Rationale
	if text := n.toggle.Text(); text != nil {
		text.Label = RationaleLabel(s.Rationale)
	}
}
