package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// RemoteCapability is the exposed interface of a sandboxed provider. Other
// systems hold it through their context handles and invoke methods on it;
// each invocation is marshaled into the provider's sandbox through the
// plume_invoke export. It carries no provider state on the host side.
type RemoteCapability struct {
	instance   *Instance
	capability plume.CapabilityID
}

// Capability returns the identifier this proxy serves.
func (r *RemoteCapability) Capability() plume.CapabilityID {
	return r.capability
}

// Invoke sends one raw capability call into the provider's sandbox.
func (r *RemoteCapability) Invoke(ctx context.Context, method string, args []json.RawMessage) ([]json.RawMessage, error) {
	guest := r.instance.module.instance
	invoke := guest.ExportedFunction(exportInvoke)
	if invoke == nil {
		return nil, errors.MissingExport(r.instance.Name(), exportInvoke)
	}

	frame, err := json.Marshal(CallRequest{
		Capability: string(r.capability),
		Method:     method,
		Args:       args,
	})
	if err != nil {
		return nil, errors.ParseFailed("capability call frame", err)
	}

	ptr, err := writeFrame(ctx, guest, frame)
	if err != nil {
		return nil, err
	}

	packed, err := invoke.Call(withInstance(ctx, r.instance), uint64(ptr), uint64(len(frame)))
	if err != nil {
		return nil, fmt.Errorf("guest trap: %w", err)
	}

	respPtr, respLen := unpackPtrLen(packed[0])
	data, err := readFrame(guest.Memory(), respPtr, respLen)
	if err != nil {
		return nil, err
	}

	var resp CallResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.ParseFailed("capability call response", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("capability %s method %s: %s", r.capability, method, resp.Error)
	}
	return resp.Results, nil
}

// Call marshals args, invokes method on the provider, and decodes the first
// result into out. Pass a nil out for methods without results.
func (r *RemoteCapability) Call(ctx context.Context, method string, out any, args ...any) error {
	raw := make([]json.RawMessage, len(args))
	for i, arg := range args {
		data, err := json.Marshal(arg)
		if err != nil {
			return errors.ParseFailed("capability call argument", err)
		}
		raw[i] = data
	}

	results, err := r.Invoke(ctx, method, raw)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(results) == 0 {
		return errors.InvalidInput(errors.PhaseDispatch, "capability method returned no result")
	}
	return json.Unmarshal(results[0], out)
}
