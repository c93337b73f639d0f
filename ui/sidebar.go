package ui

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/traceable/ingest"
)

const (
	emptyLibrary = "Drag files to start."
	sortingLabel = "AI Sorting..."
)

// Entry is one sidebar row: a category header or an asset under it.
type Entry struct {
	Header bool
	Label  string
	ID     string
}

// SidebarEntries flattens library groups into rows. names maps asset ids to
// display names; missing names fall back to the id.
func SidebarEntries(groups []ingest.Group, names map[string]string) []Entry {
	var out []Entry
	for _, g := range groups {
		out = append(out, Entry{Header: true, Label: fmt.Sprintf("%s (%d)", g.Category, len(g.IDs))})
		for _, id := range g.IDs {
			name := names[id]
			if name == "" {
				name = id
			}
			out = append(out, Entry{Label: name, ID: id})
		}
	}
	return out
}

// StatusText is the line under the upload button.
func StatusText(busy bool, assets int) string {
	switch {
	case busy:
		return sortingLabel
	case assets == 0:
		return emptyLibrary
	default:
		return fmt.Sprintf("%d assets", assets)
	}
}

type sidebar struct {
	container *widget.Container
	status    *widget.Text
	list      *widget.List
}

func newSidebar(faces Faces, sizes Sizes, cb Callbacks) *sidebar {
	s := &sidebar{}
	s.container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(sizes.SidebarWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Left: 16, Right: 16, Bottom: 16}),
			),
		),
	)

	s.container.AddChild(widget.NewText(
		widget.TextOpts.Text("Library", &faces.Bold, inkColor),
	))

	upload := widget.NewButton(
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text("Upload", &faces.Regular, buttonTextColor()),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(sizes.SidebarWidth-32, 36),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if cb.OnUpload != nil {
				cb.OnUpload()
			}
		}),
	)
	s.container.AddChild(upload)

	s.status = widget.NewText(
		widget.TextOpts.Text(emptyLibrary, &faces.Small, mutedColor),
	)
	s.container.AddChild(s.status)

	s.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			entry, ok := e.(Entry)
			if !ok {
				return ""
			}
			if entry.Header {
				return entry.Label
			}
			return "  " + entry.Label
		}),
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(sizes.SidebarWidth-32, 480),
		)),
	)
	s.container.AddChild(s.list)
	return s
}

func (s *sidebar) refresh(st State) {
	s.status.Label = StatusText(st.Busy, len(st.Names))
	entries := SidebarEntries(st.Groups, st.Names)
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	s.list.SetEntries(items)
}
