package plume

import "context"

// System is the contract a live system instance satisfies once constructed.
// The host loop owns every instance exclusively for its lifetime: it routes
// dispatched events to HandleEvent, registers the Expose results in the
// capability registry, and calls Close during reverse-order teardown.
//
// Sandboxed plugin instances satisfy System through a marshaling adapter;
// built-in host systems implement it directly.
type System interface {
	// Expose returns the interface value this instance provides under a
	// capability identifier from its descriptor's Provides list. The host
	// calls it once per provided capability, right after construction.
	Expose(id CapabilityID) any

	// HandleEvent delivers one event payload to the handler with the given
	// descriptor-declared index. An error return is a handler fault,
	// isolated to this system.
	HandleEvent(ctx context.Context, handler uint32, payload any) error

	// Close destroys the instance and releases its sandboxed execution
	// unit, if any.
	Close(ctx context.Context) error
}
