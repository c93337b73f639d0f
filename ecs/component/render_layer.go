package component

// RenderLayer orders board entities back to front. Grabbing an entity moves it
// above everything else.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
