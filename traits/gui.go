package traits

// Gui is an immediate-mode draw surface. Calls are valid only inside a
// frame handler and queue draws for the cycle they were issued in.
// Provided under plume.CapGui.
type Gui interface {
	// Text queues a text draw at a screen position.
	Text(x, y float32, s string)

	// Quad queues a filled rectangle with a packed RGBA color.
	Quad(x, y, w, h float32, rgba uint32)
}
