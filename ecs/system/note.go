package system

import (
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
)

// NoteSystem routes typing into the focused sticky note.
type NoteSystem struct{}

func NewNoteSystem() *NoteSystem {
	return &NoteSystem{}
}

func (s *NoteSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := ecs.First(w, component.FocusedComponent)
	if !ok {
		return
	}
	note, ok := ecs.Get(w, e, component.NoteComponent)
	if !ok {
		return
	}
	in := InputOf(w)

	if in.Escape {
		ecs.Remove(w, e, component.FocusedComponent)
		return
	}
	if in.Backspace && len(note.Text) > 0 {
		r := []rune(note.Text)
		note.Text = string(r[:len(r)-1])
	}
	if in.Enter {
		note.Text += "\n"
	}
	for _, r := range in.Runes {
		if r >= 0x20 && r != 0x7f {
			note.Text += string(r)
		}
	}
}
