package host

import (
	"context"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
	"github.com/plumehq/plume/engine"
	"github.com/plumehq/plume/errors"
)

// LoadModule compiles a plugin binary, brings up its sandboxed unit, reads
// its descriptor, and registers it as a system factory for the session.
// The system itself is constructed during Start, in resolved order. The
// engine is created lazily on first use with the configured memory limit.
func (h *Host) LoadModule(ctx context.Context, name string, wasm []byte) error {
	if h.started {
		return errors.Sealed(errors.PhaseHost, "host")
	}

	if h.engine == nil {
		engine.SetLogger(h.log)
		eng, err := engine.New(ctx, engine.Config{MemoryLimitPages: h.cfg.MemoryLimitPages})
		if err != nil {
			return err
		}
		h.engine = eng
	}

	mod, err := h.engine.Load(ctx, name, wasm)
	if err != nil {
		return err
	}

	return h.AddFactory(Factory{
		Descriptor: mod.Descriptor(),
		New: func(ctx context.Context, handle *capability.Handle) (plume.System, error) {
			return mod.Instantiate(ctx, handle)
		},
	})
}
