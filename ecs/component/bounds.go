package component

type Bounds struct {
	W float64
	H float64
}

var BoundsComponent = NewComponent[Bounds]()
