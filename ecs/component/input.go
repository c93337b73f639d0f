package component

// Input stores per-frame pointer and keyboard state. A single entity carries
// it; InputSystem refreshes it at the start of every update.
type Input struct {
	X, Y float64

	Pressed      bool
	JustPressed  bool
	JustReleased bool
	DoubleClick  bool

	// OverUI is set when ebitenui widgets own the pointer.
	OverUI bool

	Runes     []rune
	Backspace bool
	Escape    bool
	Enter     bool
	Delete    bool
	Paste     bool

	Wheel float64
}

var InputComponent = NewComponent[Input]()
