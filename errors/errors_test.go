package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := &Error{
		Phase:      PhaseResolve,
		Kind:       KindInvalidDescriptor,
		System:     "camera",
		Capability: "plume:camera/camera",
		Detail:     "empty name",
	}

	msg := err.Error()
	for _, want := range []string{"[resolve]", "invalid_descriptor", "camera", "plume:camera/camera", "empty name"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := Sealed(PhaseDispatch, "dispatcher")
	if !stderrors.Is(err, &Error{Phase: PhaseDispatch, Kind: KindSealed}) {
		t.Error("expected Is to match on phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseResolve, Kind: KindSealed}) {
		t.Error("expected Is to reject a different phase")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := stderrors.New("guest trap")
	err := Instantiation("logger", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap chain to reach the cause")
	}
}

func TestUnresolvedCapabilityError(t *testing.T) {
	err := &UnresolvedCapabilityError{Capability: "plume:gui/gui", Requester: "hud"}
	msg := err.Error()
	if !strings.Contains(msg, "hud") || !strings.Contains(msg, "plume:gui/gui") {
		t.Errorf("message %q should name the requester and the capability", msg)
	}
	if !stderrors.Is(err, &UnresolvedCapabilityError{}) {
		t.Error("expected Is to match by type")
	}
}

func TestAmbiguousCapabilityError(t *testing.T) {
	err := &AmbiguousCapabilityError{
		Capability: "plume:timing/frame-timing",
		Providers:  []string{"timing-a", "timing-b"},
	}
	msg := err.Error()
	if !strings.Contains(msg, "timing-a") || !strings.Contains(msg, "timing-b") {
		t.Errorf("message %q should name all providers", msg)
	}
}

func TestDependencyCycleError(t *testing.T) {
	err := &DependencyCycleError{Path: []string{"a", "b"}}
	msg := err.Error()
	if !strings.Contains(msg, "a -> b -> a") {
		t.Errorf("message %q should show the closed cycle path", msg)
	}
}

func TestHandlerFaultErrorUnwrap(t *testing.T) {
	cause := stderrors.New("index out of range")
	err := &HandlerFaultError{System: "hud", Event: "plume:timing/frame", Cause: cause}
	if !stderrors.Is(err, cause) {
		t.Error("expected fault cause to be reachable via Unwrap")
	}
	if !strings.Contains(err.Error(), "hud") {
		t.Error("expected fault message to name the system")
	}
}
