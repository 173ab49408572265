package capability

import (
	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// Handle is a capability-scoped accessor bound to exactly one system
// instance. It can reach only the capabilities its owner declared, which
// keeps the declared dependency graph an accurate model of runtime
// coupling. A Handle is a non-owning view into the registry.
type Handle struct {
	registry *Registry
	owner    string
	declared map[plume.CapabilityID]bool
	optional map[plume.CapabilityID]bool
}

// Owner returns the name of the system this handle was issued to.
func (h *Handle) Owner() string {
	return h.owner
}

// Declares reports whether id is in the owner's declared dependency set.
func (h *Handle) Declares(id plume.CapabilityID) bool {
	return h.declared[id]
}

// Lookup returns the exposed interface of the system providing id.
//
// The three outcomes mirror the declaration contract:
//   - declared and provided: (iface, true, nil)
//   - declared optional, no provider in the set: (nil, false, nil)
//   - never declared by the owner: (nil, false, *errors.ScopeViolationError),
//     even if some other system registered the capability
//
// A required capability missing from a sealed registry means the host
// skipped resolution; that is reported as a not_found error rather than
// "unavailable".
func (h *Handle) Lookup(id plume.CapabilityID) (any, bool, error) {
	if !h.declared[id] {
		return nil, false, &errors.ScopeViolationError{
			System:     h.owner,
			Capability: string(id),
		}
	}
	p, ok := h.registry.provider(id)
	if !ok {
		if h.optional[id] {
			return nil, false, nil
		}
		return nil, false, errors.NotFound(errors.PhaseDispatch, "required capability provider", string(id))
	}
	return p.Iface, true, nil
}

// Get looks up id and asserts the provider's exposed interface to T.
// It reports unavailable like Handle.Lookup and fails when the provider
// does not implement T.
func Get[T any](h *Handle, id plume.CapabilityID) (T, bool, error) {
	var zero T
	iface, ok, err := h.Lookup(id)
	if err != nil || !ok {
		return zero, ok, err
	}
	typed, ok := iface.(T)
	if !ok {
		return zero, false, errors.InvalidInput(errors.PhaseDispatch,
			"capability "+string(id)+" provider does not implement the requested interface")
	}
	return typed, true, nil
}
