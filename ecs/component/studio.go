package component

// Studio marks the massing studio window. Restore holds the window rect from
// before it was maximized.
type Studio struct {
	Maximized bool
	Restore   struct {
		X, Y, W, H float64
	}
}

var StudioComponent = NewComponent[Studio]()
