package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the host lifecycle the error occurred
type Phase string

const (
	PhaseLoad        Phase = "load"        // plugin module loading
	PhaseParse       Phase = "parse"       // descriptor/manifest parsing
	PhaseResolve     Phase = "resolve"     // dependency resolution
	PhaseInstantiate Phase = "instantiate" // system construction
	PhaseDispatch    Phase = "dispatch"    // event delivery
	PhaseHost        Phase = "host"        // host loop orchestration
)

// Kind categorizes the error
type Kind string

const (
	KindUnresolvedCapability Kind = "unresolved_capability"
	KindAmbiguousCapability  Kind = "ambiguous_capability"
	KindDependencyCycle      Kind = "dependency_cycle"
	KindScopeViolation       Kind = "scope_violation"
	KindHandlerFault         Kind = "handler_fault"
	KindInvalidDescriptor    Kind = "invalid_descriptor"
	KindInvalidData          Kind = "invalid_data"
	KindInvalidInput         Kind = "invalid_input"
	KindNotFound             Kind = "not_found"
	KindNotInitialized       Kind = "not_initialized"
	KindSealed               Kind = "sealed"
	KindDuplicate            Kind = "duplicate"
	KindInstantiation        Kind = "instantiation"
	KindMissingExport        Kind = "missing_export"
)

// Error is the structured error type used throughout the host
type Error struct {
	Cause      error
	Phase      Phase
	Kind       Kind
	System     string
	Capability string
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.System != "" {
		b.WriteString(" in system ")
		b.WriteString(e.System)
	}
	if e.Capability != "" {
		b.WriteString(" for capability ")
		b.WriteString(e.Capability)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotInitialized creates a not-initialized error for a missing facility
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Sealed creates an error for mutation after the instantiation phase ended
func Sealed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSealed,
		Detail: fmt.Sprintf("%s is sealed; registration is only allowed during instantiation", what),
	}
}

// Duplicate creates an error for a second registration under the same key
func Duplicate(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: fmt.Sprintf("%s %q already registered", what, name),
	}
}

// InvalidDescriptor creates an error for a malformed system descriptor
func InvalidDescriptor(system, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidDescriptor,
		System: system,
		Detail: detail,
	}
}

// MissingExport creates an error for a plugin module lacking a required export
func MissingExport(system, export string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindMissingExport,
		System: system,
		Detail: fmt.Sprintf("module does not export %q", export),
	}
}

// Instantiation wraps a system construction failure
func Instantiation(system string, cause error) *Error {
	return &Error{
		Phase:  PhaseInstantiate,
		Kind:   KindInstantiation,
		System: system,
		Detail: "construct system instance",
		Cause:  cause,
	}
}

// Load wraps a module loading failure
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed wraps a parsing failure
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
