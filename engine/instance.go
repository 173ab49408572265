package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
	"github.com/plumehq/plume/errors"
)

type instanceCtxKey struct{}

// withInstance tags ctx with the instance whose guest code is about to run,
// so host functions invoked from inside the guest can route capability
// calls through the right context handle.
func withInstance(ctx context.Context, inst *Instance) context.Context {
	return context.WithValue(ctx, instanceCtxKey{}, inst)
}

func instanceFrom(ctx context.Context) *Instance {
	inst, _ := ctx.Value(instanceCtxKey{}).(*Instance)
	return inst
}

// Instance is a live sandboxed system. It satisfies plume.System: events
// are delivered as JSON frames through plume_handle, and capabilities this
// system provides are exposed to others as RemoteCapability proxies.
type Instance struct {
	module *Module
	handle *capability.Handle
}

// Name returns the system name from the plugin descriptor.
func (i *Instance) Name() string {
	return i.module.desc.Name
}

// Handle returns the context handle bound to this instance.
func (i *Instance) Handle() *capability.Handle {
	return i.handle
}

// Expose returns a marshaling proxy for a capability this plugin provides.
func (i *Instance) Expose(id plume.CapabilityID) any {
	for _, provided := range i.module.desc.Provides {
		if provided == id {
			return &RemoteCapability{instance: i, capability: id}
		}
	}
	return nil
}

// HandleEvent marshals the payload and delivers it to the guest handler.
// A guest trap or a nonzero handler status is a handler fault, isolated to
// this system.
func (i *Instance) HandleEvent(ctx context.Context, handler uint32, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.ParseFailed("event payload", err)
	}

	guest := i.module.instance
	ptr, err := writeFrame(ctx, guest, data)
	if err != nil {
		return err
	}

	results, err := guest.ExportedFunction(exportHandle).Call(withInstance(ctx, i),
		uint64(handler), uint64(ptr), uint64(len(data)))
	if err != nil {
		return fmt.Errorf("guest trap: %w", err)
	}
	if code := int32(results[0]); code != 0 {
		return fmt.Errorf("guest handler %d reported status %d", handler, code)
	}
	return nil
}

// Close tears down the sandboxed unit.
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// capabilityCall serves one marshaled lookup-and-invoke from this
// instance's guest code. Scoping is enforced host-side through the bound
// handle, so a forged frame cannot reach an undeclared capability.
func (i *Instance) capabilityCall(ctx context.Context, req CallRequest) CallResponse {
	iface, ok, err := i.handle.Lookup(plume.CapabilityID(req.Capability))
	if err != nil {
		return CallResponse{Error: err.Error()}
	}
	if !ok {
		return CallResponse{Unavailable: true}
	}

	// A provider living in another sandbox is reached through its proxy;
	// native providers are invoked by reflection.
	if remote, isRemote := iface.(*RemoteCapability); isRemote {
		results, err := remote.Invoke(ctx, req.Method, req.Args)
		if err != nil {
			return CallResponse{Error: err.Error()}
		}
		return CallResponse{OK: true, Results: results}
	}

	results, err := invokeByName(iface, req.Method, req.Args)
	if err != nil {
		return CallResponse{Error: err.Error()}
	}
	return CallResponse{OK: true, Results: results}
}
