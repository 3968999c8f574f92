package component

// RenderLayer orders skeleton drawing. Lower layers draw first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
