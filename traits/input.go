package traits

// Key identifies a keyboard key in a layout-independent way.
type Key string

// PointerButton identifies one pointer (mouse) button.
type PointerButton uint8

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
)

// PointerState is a snapshot of the pointer for the current cycle.
type PointerState struct {
	X, Y    float64
	Buttons map[PointerButton]bool
}

// Input exposes the current pointer/key/controller state. Snapshots are
// stable within one dispatch cycle. Provided under plume.CapInput.
type Input interface {
	// Pointer returns the pointer snapshot for this cycle.
	Pointer() PointerState

	// KeyDown reports whether key is currently held.
	KeyDown(key Key) bool
}
