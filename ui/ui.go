// Package ui builds the ebitenui widgets around the board: the top nav, the
// library sidebar and the studio toolbar.
package ui

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/traceable/ingest"
	"github.com/milk9111/traceable/studio"
)

// Callbacks are invoked from widget handlers during ebitenui's update.
type Callbacks struct {
	OnToggleRationale func(visible bool)
	OnUpload          func()
	OnMode            func(m studio.Mode)
	OnDelete          func()
	OnAdd             func(s studio.Shape)
	OnMaximize        func()
}

// State is everything the widgets display that lives outside them.
type State struct {
	Groups    []ingest.Group
	Names     map[string]string
	Busy      bool
	Rationale bool
	Selected  bool
	Mode      studio.Mode
	Maximized bool
}

// Sizes of the fixed chrome.
type Sizes struct {
	NavHeight    int
	SidebarWidth int
}

type UI struct {
	UI *ebitenui.UI

	nav     *navBar
	sidebar *sidebar
	toolbar *toolbar
	last    State
	primed  bool
}

func Build(faces Faces, sizes Sizes, cb Callbacks) *UI {
	ui := &ebitenui.UI{}
	face := faces.Regular
	ui.PrimaryTheme = newTheme(&face)

	u := &UI{
		nav:     newNavBar(faces, sizes, cb),
		sidebar: newSidebar(faces, sizes, cb),
		toolbar: newToolbar(faces, cb),
	}

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	u.nav.container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchHorizontal:  true,
	}

	// everything below the nav bar
	body := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: sizes.NavHeight}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			StretchHorizontal: true,
			StretchVertical:   true,
		})),
	)
	u.sidebar.container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchVertical:    true,
	}
	// Toolbar: bottom center
	u.toolbar.container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	body.AddChild(u.sidebar.container)
	body.AddChild(u.toolbar.container)
	root.AddChild(body)
	root.AddChild(u.nav.container)
	ui.Container = root
	u.UI = ui
	return u
}

// Refresh pushes s into the widgets. Unchanged state is a no-op.
func (u *UI) Refresh(s State) {
	if u == nil {
		return
	}
	if u.primed && sameState(u.last, s) {
		return
	}
	u.nav.refresh(s)
	u.sidebar.refresh(s)
	u.toolbar.refresh(s)
	u.last = s
	u.primed = true
}

func (u *UI) Update() {
	if u == nil || u.UI == nil {
		return
	}
	u.UI.Update()
}

func (u *UI) Draw(screen *ebiten.Image) {
	if u == nil || u.UI == nil {
		return
	}
	u.UI.Draw(screen)
}

func sameState(a, b State) bool {
	if a.Busy != b.Busy || a.Rationale != b.Rationale || a.Selected != b.Selected ||
		a.Mode != b.Mode || a.Maximized != b.Maximized || len(a.Groups) != len(b.Groups) ||
		len(a.Names) != len(b.Names) {
		return false
	}
	for i := range a.Groups {
		if a.Groups[i].Category != b.Groups[i].Category || len(a.Groups[i].IDs) != len(b.Groups[i].IDs) {
			return false
		}
		for j := range a.Groups[i].IDs {
			if a.Groups[i].IDs[j] != b.Groups[i].IDs[j] {
				return false
			}
		}
	}
	for k, v := range a.Names {
		if b.Names[k] != v {
			return false
		}
	}
	return true
}
