package capability

import (
	"errors"
	"testing"

	"github.com/plumehq/plume"
	plumeerrors "github.com/plumehq/plume/errors"
)

type fakeTiming struct {
	elapsed int64
}

func (f *fakeTiming) FrameNanos() int64 { return f.elapsed }

func TestLookupDeclaredAndProvided(t *testing.T) {
	reg := NewRegistry()
	timing := &fakeTiming{elapsed: 16_000_000}
	if err := reg.Register("timing", "timing-sys", timing); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Seal()

	h := reg.Issue(plume.Descriptor{
		Name:     "hud",
		Requires: []plume.CapabilityID{"timing"},
	})

	iface, ok, err := h.Lookup("timing")
	if err != nil || !ok {
		t.Fatalf("lookup = (%v, %v, %v), want provider", iface, ok, err)
	}
	if iface != timing {
		t.Error("lookup should return the registered interface value")
	}
}

func TestLookupUndeclaredIsScopeViolation(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("timing", "timing-sys", &fakeTiming{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Seal()

	// "timing" is registered, but hud never declared it.
	h := reg.Issue(plume.Descriptor{Name: "hud"})

	iface, ok, err := h.Lookup("timing")
	if iface != nil || ok {
		t.Fatal("undeclared lookup must never return a valid reference")
	}
	var violation *plumeerrors.ScopeViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected ScopeViolationError, got %v", err)
	}
	if violation.System != "hud" || violation.Capability != "timing" {
		t.Errorf("violation should name owner and capability: %+v", violation)
	}
}

func TestLookupOptionalAbsentIsUnavailable(t *testing.T) {
	reg := NewRegistry()
	reg.Seal()

	h := reg.Issue(plume.Descriptor{
		Name:     "hud",
		Optional: []plume.CapabilityID{"gui"},
	})

	iface, ok, err := h.Lookup("gui")
	if err != nil {
		t.Fatalf("optional absence is not an error, got %v", err)
	}
	if iface != nil || ok {
		t.Error("optional absence must report unavailable")
	}
}

func TestLookupOptionalPresent(t *testing.T) {
	reg := NewRegistry()
	gui := &fakeTiming{}
	if err := reg.Register("gui", "gui-sys", gui); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Seal()

	h := reg.Issue(plume.Descriptor{
		Name:     "hud",
		Optional: []plume.CapabilityID{"gui"},
	})

	iface, ok, err := h.Lookup("gui")
	if err != nil || !ok || iface != gui {
		t.Fatalf("lookup = (%v, %v, %v), want registered provider", iface, ok, err)
	}
}

func TestRegisterDuplicateProvider(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("timing", "timing-a", &fakeTiming{}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	err := reg.Register("timing", "timing-b", &fakeTiming{})
	var ambiguous *plumeerrors.AmbiguousCapabilityError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousCapabilityError, got %v", err)
	}
	if ambiguous.Providers[0] != "timing-a" || ambiguous.Providers[1] != "timing-b" {
		t.Errorf("error should name both providers, got %v", ambiguous.Providers)
	}
}

func TestRegisterAfterSeal(t *testing.T) {
	reg := NewRegistry()
	reg.Seal()

	err := reg.Register("timing", "timing-sys", &fakeTiming{})
	if !errors.Is(err, &plumeerrors.Error{Phase: plumeerrors.PhaseInstantiate, Kind: plumeerrors.KindSealed}) {
		t.Fatalf("expected sealed error, got %v", err)
	}
}

type nanoser interface {
	FrameNanos() int64
}

func TestGetTyped(t *testing.T) {
	reg := NewRegistry()
	timing := &fakeTiming{elapsed: 42}
	if err := reg.Register("timing", "timing-sys", timing); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Seal()

	h := reg.Issue(plume.Descriptor{
		Name:     "hud",
		Requires: []plume.CapabilityID{"timing"},
	})

	got, ok, err := Get[nanoser](h, "timing")
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v, %v)", got, ok, err)
	}
	if got.FrameNanos() != 42 {
		t.Errorf("FrameNanos() = %d, want 42", got.FrameNanos())
	}

	// Wrong interface shape fails without panicking.
	if _, ok, err := Get[interface{ TickNanos() int64 }](h, "timing"); ok || err == nil {
		t.Error("expected typed lookup to fail for a mismatched interface")
	}
}
