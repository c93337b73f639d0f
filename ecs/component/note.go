package component

// Note is a sticky note's editable text.
type Note struct {
	Text string
}

var NoteComponent = NewComponent[Note]()
