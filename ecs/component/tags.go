package component

// Focused marks the note receiving typed text.
type Focused struct{}

var FocusedComponent = NewComponent[Focused]()

// Hovered marks the entity under the pointer this frame.
type Hovered struct{}

var HoveredComponent = NewComponent[Hovered]()
