package host

import (
	"context"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
)

// Factory describes one loadable system type: its static descriptor,
// discoverable before instantiation, and a constructor the host loop calls
// during the instantiation phase with the instance's context handle.
type Factory struct {
	Descriptor plume.Descriptor
	New        func(ctx context.Context, handle *capability.Handle) (plume.System, error)
}
