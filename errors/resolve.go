package errors

import (
	"fmt"
	"strings"
)

// UnresolvedCapabilityError is returned when a required capability has no
// provider in the active system set.
type UnresolvedCapabilityError struct {
	Capability string // capability identifier
	Requester  string // system that required it
}

func (e *UnresolvedCapabilityError) Error() string {
	return fmt.Sprintf("[resolve] unresolved_capability: system %q requires %q but no system in the set provides it",
		e.Requester, e.Capability)
}

// Is reports whether target matches this error type
func (e *UnresolvedCapabilityError) Is(target error) bool {
	_, ok := target.(*UnresolvedCapabilityError)
	return ok
}

// AmbiguousCapabilityError is returned when more than one system in the
// active set provides the same capability identifier.
type AmbiguousCapabilityError struct {
	Capability string
	Providers  []string // all providers, in declaration order
}

func (e *AmbiguousCapabilityError) Error() string {
	return fmt.Sprintf("[resolve] ambiguous_capability: capability %q is provided by %d systems: %s",
		e.Capability, len(e.Providers), strings.Join(e.Providers, ", "))
}

// Is reports whether target matches this error type
func (e *AmbiguousCapabilityError) Is(target error) bool {
	_, ok := target.(*AmbiguousCapabilityError)
	return ok
}

// DependencyCycleError is returned when required capabilities form a cycle.
// Path lists the systems on the cycle in dependency order; the last entry
// depends on the first.
type DependencyCycleError struct {
	Path []string
}

func (e *DependencyCycleError) Error() string {
	if len(e.Path) == 0 {
		return "[resolve] dependency_cycle: cycle among remaining systems"
	}
	var b strings.Builder
	b.WriteString("[resolve] dependency_cycle: ")
	for _, name := range e.Path {
		b.WriteString(name)
		b.WriteString(" -> ")
	}
	b.WriteString(e.Path[0])
	return b.String()
}

// Is reports whether target matches this error type
func (e *DependencyCycleError) Is(target error) bool {
	_, ok := target.(*DependencyCycleError)
	return ok
}

// ScopeViolationError is returned when a context handle is used to reach a
// capability its owner never declared. This is a programming-contract
// violation in the plugin, not a recoverable condition.
type ScopeViolationError struct {
	System     string
	Capability string
}

func (e *ScopeViolationError) Error() string {
	return fmt.Sprintf("[dispatch] scope_violation: system %q looked up capability %q which it never declared",
		e.System, e.Capability)
}

// Is reports whether target matches this error type
func (e *ScopeViolationError) Is(target error) bool {
	_, ok := target.(*ScopeViolationError)
	return ok
}

// HandlerFaultError wraps an unrecoverable failure inside one system's event
// handler. The fault is isolated to that system; the host loop decides
// whether to evict, ignore, or abort.
type HandlerFaultError struct {
	System string
	Event  string
	Cause  error
}

func (e *HandlerFaultError) Error() string {
	return fmt.Sprintf("[dispatch] handler_fault: system %q handler for %q: %v",
		e.System, e.Event, e.Cause)
}

// Unwrap returns the underlying fault
func (e *HandlerFaultError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type
func (e *HandlerFaultError) Is(target error) bool {
	_, ok := target.(*HandlerFaultError)
	return ok
}
