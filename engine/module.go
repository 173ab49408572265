package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
	"github.com/plumehq/plume/errors"
)

// Module is one loaded plugin: a compiled binary running in its own
// sandboxed unit, with its descriptor already discovered. Construction of
// the system instance is deferred until the host loop reaches it in
// resolved order.
type Module struct {
	engine   *Engine
	instance api.Module
	desc     plume.Descriptor
}

// Descriptor returns the static metadata read from the plugin.
func (m *Module) Descriptor() plume.Descriptor {
	return m.desc
}

func (m *Module) describe(ctx context.Context) (plume.Descriptor, error) {
	results, err := m.instance.ExportedFunction(exportDescribe).Call(ctx)
	if err != nil {
		return plume.Descriptor{}, errors.Load("call "+exportDescribe, err)
	}
	ptr, length := unpackPtrLen(results[0])
	data, err := readFrame(m.instance.Memory(), ptr, length)
	if err != nil {
		return plume.Descriptor{}, err
	}
	return decodeDescriptor(data)
}

// Instantiate constructs the system inside the sandboxed unit by calling
// plume_new, binding the issued context handle to the instance for the
// lifetime of the session. The returned value satisfies plume.System.
func (m *Module) Instantiate(ctx context.Context, handle *capability.Handle) (*Instance, error) {
	inst := &Instance{module: m, handle: handle}

	results, err := m.instance.ExportedFunction(exportNew).Call(withInstance(ctx, inst))
	if err != nil {
		return nil, errors.Instantiation(m.desc.Name, err)
	}
	if code := int32(results[0]); code != 0 {
		return nil, errors.InvalidInput(errors.PhaseInstantiate,
			"guest constructor reported failure for "+m.desc.Name)
	}
	return inst, nil
}

// Close tears down the sandboxed unit. The host loop calls this through the
// instance during reverse-order teardown; closing an unused module (e.g. a
// plugin rejected with the rest of its set) is also valid.
func (m *Module) Close(ctx context.Context) error {
	return m.instance.Close(ctx)
}
