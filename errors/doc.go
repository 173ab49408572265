// Package errors provides structured error types for the plugin host.
//
// Two layers coexist: a generic Error carrying a lifecycle Phase and a Kind
// for diagnostics, and dedicated types for the resolution and dispatch
// taxonomy (UnresolvedCapabilityError, AmbiguousCapabilityError,
// DependencyCycleError, ScopeViolationError, HandlerFaultError) that callers
// match with errors.As to drive policy decisions.
package errors
