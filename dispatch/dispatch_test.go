package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/plumehq/plume"
	plumeerrors "github.com/plumehq/plume/errors"
)

const frameKind plume.EventKind = "plume:timing/frame"

func TestDispatchOrder(t *testing.T) {
	d := New()
	var calls []string
	record := func(name string) Handler {
		return func(ctx context.Context, payload any) error {
			calls = append(calls, name)
			return nil
		}
	}

	for _, name := range []string{"x", "y", "z"} {
		if err := d.Register(name, frameKind, record(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	d.Seal()

	for cycle := 0; cycle < 3; cycle++ {
		calls = calls[:0]
		if faults := d.Dispatch(context.Background(), frameKind, nil); len(faults) != 0 {
			t.Fatalf("cycle %d: unexpected faults %v", cycle, faults)
		}
		if len(calls) != 3 || calls[0] != "x" || calls[1] != "y" || calls[2] != "z" {
			t.Fatalf("cycle %d: calls = %v, want [x y z]", cycle, calls)
		}
	}
}

func TestDispatchFaultIsolation(t *testing.T) {
	d := New()
	var calls []string

	d.Register("x", frameKind, func(ctx context.Context, payload any) error {
		calls = append(calls, "x")
		return nil
	})
	d.Register("y", frameKind, func(ctx context.Context, payload any) error {
		calls = append(calls, "y")
		return errors.New("guest trap")
	})
	d.Register("z", frameKind, func(ctx context.Context, payload any) error {
		calls = append(calls, "z")
		return nil
	})
	d.Seal()

	faults := d.Dispatch(context.Background(), frameKind, nil)

	if len(calls) != 3 || calls[2] != "z" {
		t.Fatalf("fault in y must not prevent z from running, calls = %v", calls)
	}
	if len(faults) != 1 {
		t.Fatalf("expected one fault report, got %v", faults)
	}
	if faults[0].System != "y" || faults[0].Event != frameKind {
		t.Errorf("report should identify system y and the event kind, got %+v", faults[0])
	}
	var fault *plumeerrors.HandlerFaultError
	if !errors.As(faults[0].Err, &fault) {
		t.Errorf("report error should be a HandlerFaultError, got %v", faults[0].Err)
	}
}

func TestDispatchPanicRecovered(t *testing.T) {
	d := New()
	ran := false

	d.Register("y", frameKind, func(ctx context.Context, payload any) error {
		panic("index out of range")
	})
	d.Register("z", frameKind, func(ctx context.Context, payload any) error {
		ran = true
		return nil
	})
	d.Seal()

	faults := d.Dispatch(context.Background(), frameKind, nil)
	if !ran {
		t.Fatal("panic in y must not prevent z from running")
	}
	if len(faults) != 1 || faults[0].System != "y" {
		t.Fatalf("expected one fault from y, got %v", faults)
	}
}

func TestDispatchPayloadDelivered(t *testing.T) {
	d := New()
	var got any
	d.Register("x", frameKind, func(ctx context.Context, payload any) error {
		got = payload
		return nil
	})
	d.Seal()

	d.Dispatch(context.Background(), frameKind, int64(16_000_000))
	if got != int64(16_000_000) {
		t.Errorf("payload = %v, want 16000000", got)
	}
}

func TestRegisterAfterSeal(t *testing.T) {
	d := New()
	d.Seal()
	err := d.Register("late", frameKind, func(ctx context.Context, payload any) error { return nil })
	if !errors.Is(err, &plumeerrors.Error{Phase: plumeerrors.PhaseInstantiate, Kind: plumeerrors.KindSealed}) {
		t.Fatalf("expected sealed error, got %v", err)
	}
}

func TestEvictRemovesAllHandlers(t *testing.T) {
	d := New()
	var calls []string
	record := func(name string) Handler {
		return func(ctx context.Context, payload any) error {
			calls = append(calls, name)
			return nil
		}
	}

	d.Register("x", frameKind, record("x"))
	d.Register("y", frameKind, record("y1"))
	d.Register("y", frameKind, record("y2"))
	d.Register("y", "plume:timing/tick", record("y-tick"))
	d.Register("z", frameKind, record("z"))
	d.Seal()

	if removed := d.Evict("y"); removed != 3 {
		t.Fatalf("Evict(y) removed %d handlers, want 3", removed)
	}

	d.Dispatch(context.Background(), frameKind, nil)
	if len(calls) != 2 || calls[0] != "x" || calls[1] != "z" {
		t.Errorf("after eviction calls = %v, want [x z]", calls)
	}
	if got := d.Systems(frameKind); len(got) != 2 {
		t.Errorf("Systems(frame) = %v after eviction", got)
	}
}

func TestWithinSystemDeclarationOrder(t *testing.T) {
	d := New()
	var calls []string
	record := func(name string) Handler {
		return func(ctx context.Context, payload any) error {
			calls = append(calls, name)
			return nil
		}
	}

	d.Register("x", frameKind, record("x-first"))
	d.Register("x", frameKind, record("x-second"))
	d.Seal()

	d.Dispatch(context.Background(), frameKind, nil)
	if len(calls) != 2 || calls[0] != "x-first" || calls[1] != "x-second" {
		t.Errorf("calls = %v, want declaration order within the system", calls)
	}
}
