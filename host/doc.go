// Package host implements the host loop: it collects system descriptors,
// resolves them into an instantiation order, constructs each instance with
// a freshly issued context handle, registers event handlers, and then runs
// the recurring dispatch cycle until the session ends.
//
// Startup is all-or-nothing: any resolution error rejects the whole system
// set before a single instance is constructed. At runtime, handler faults
// are reported and handled per the configured fault policy; teardown
// destroys instances in reverse instantiation order so no instance outlives
// a capability it depends on.
package host
