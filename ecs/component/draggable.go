package component

import "github.com/milk9111/traceable/drag"

type Draggable struct {
	Session drag.Session
	// Locked entities ignore presses.
	Locked bool
}

var DraggableComponent = NewComponent[Draggable]()
