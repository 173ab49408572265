package capability

import (
	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// Provider is a registry entry: the system instance exposing a capability
// and the interface value it exposes. The registry never owns the instance;
// ownership stays with the host loop.
type Provider struct {
	System string
	Iface  any
}

// Registry maps capability identifiers to their providers.
//
// It has a strict two-phase lifecycle: during instantiation the host loop
// registers each system's provided capabilities as that system finishes
// construction; Seal ends the mutation phase before the first dispatch
// cycle. Entries are insert-once. The registry is owned exclusively by the
// host loop and needs no synchronization: mutation is confined to the
// non-concurrent instantiation phase.
type Registry struct {
	entries map[plume.CapabilityID]Provider
	sealed  bool
}

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[plume.CapabilityID]Provider),
	}
}

// Register records iface as the provider of id. Registering after Seal or
// registering a second provider for the same identifier is an error.
func (r *Registry) Register(id plume.CapabilityID, system string, iface any) error {
	if r.sealed {
		return errors.Sealed(errors.PhaseInstantiate, "capability registry")
	}
	if prev, ok := r.entries[id]; ok {
		return &errors.AmbiguousCapabilityError{
			Capability: string(id),
			Providers:  []string{prev.System, system},
		}
	}
	r.entries[id] = Provider{System: system, Iface: iface}
	return nil
}

// Seal ends the mutation phase. After Seal the registry is read-only.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether the mutation phase has ended.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Issue creates the context handle for one system instance, scoped to the
// declared dependency set of its descriptor. Issued once, at construction
// time; the handle shares the instance's lifetime.
func (r *Registry) Issue(desc plume.Descriptor) *Handle {
	return &Handle{
		registry: r,
		owner:    desc.Name,
		declared: desc.DeclaredSet(),
		optional: optionalSet(desc),
	}
}

func (r *Registry) provider(id plume.CapabilityID) (Provider, bool) {
	p, ok := r.entries[id]
	return p, ok
}

func optionalSet(desc plume.Descriptor) map[plume.CapabilityID]bool {
	set := make(map[plume.CapabilityID]bool, len(desc.Optional))
	for _, id := range desc.Optional {
		set[id] = true
	}
	return set
}
