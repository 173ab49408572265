package dispatch

import (
	"context"
	"fmt"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// Handler delivers one event payload to its owning system instance. The
// closure carries the only mutable reference to that system's state; other
// systems are reachable solely through the owner's context handle.
type Handler func(ctx context.Context, payload any) error

// FaultReport describes one isolated handler failure during a dispatch
// cycle. The dispatcher reports faults; the host loop owns the policy.
type FaultReport struct {
	System string
	Event  plume.EventKind
	Err    error
}

type registration struct {
	system string
	fn     Handler
}

// Dispatcher maintains, per event kind, the ordered list of registered
// handlers and delivers payloads to them synchronously.
//
// Ordering guarantee: handlers for the same event kind run in the order
// their owning systems were instantiated, then in declaration order within
// a system. Registration happens only during the instantiation phase; Seal
// ends it before the first cycle. Eviction of a faulted system is the one
// post-seal mutation, and it happens between cycles under host control.
type Dispatcher struct {
	byKind map[plume.EventKind][]registration
	sealed bool
}

// New creates an empty, unsealed dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		byKind: make(map[plume.EventKind][]registration),
	}
}

// Register appends a handler for kind, owned by the named system. Handlers
// must be registered in instantiation order, then declaration order; the
// host loop drives registration as it constructs each instance.
func (d *Dispatcher) Register(system string, kind plume.EventKind, fn Handler) error {
	if d.sealed {
		return errors.Sealed(errors.PhaseInstantiate, "event dispatcher")
	}
	if fn == nil {
		return errors.InvalidInput(errors.PhaseInstantiate, "nil handler for system "+system)
	}
	d.byKind[kind] = append(d.byKind[kind], registration{system: system, fn: fn})
	return nil
}

// Seal ends the registration phase.
func (d *Dispatcher) Seal() {
	d.sealed = true
}

// Sealed reports whether the registration phase has ended.
func (d *Dispatcher) Sealed() bool {
	return d.sealed
}

// HandlerCount returns the number of handlers registered for kind.
func (d *Dispatcher) HandlerCount(kind plume.EventKind) int {
	return len(d.byKind[kind])
}

// Systems returns the owning system of each handler for kind, in dispatch
// order.
func (d *Dispatcher) Systems(kind plume.EventKind) []string {
	regs := d.byKind[kind]
	out := make([]string, len(regs))
	for i, r := range regs {
		out[i] = r.system
	}
	return out
}

// Dispatch runs one synchronous cycle for kind: every registered handler is
// invoked, in order, with the payload. A handler fault never corrupts
// dispatcher state and never prevents later handlers in the same cycle from
// running; each fault is returned as a report naming the system and the
// event kind.
func (d *Dispatcher) Dispatch(ctx context.Context, kind plume.EventKind, payload any) []FaultReport {
	var faults []FaultReport
	for _, reg := range d.byKind[kind] {
		if err := invoke(ctx, reg.fn, payload); err != nil {
			faults = append(faults, FaultReport{
				System: reg.system,
				Event:  kind,
				Err: &errors.HandlerFaultError{
					System: reg.system,
					Event:  string(kind),
					Cause:  err,
				},
			})
		}
	}
	return faults
}

// Evict removes every handler owned by system from all event kinds. Called
// by the host loop between cycles when its fault policy removes a plugin
// from future dispatch.
func (d *Dispatcher) Evict(system string) int {
	removed := 0
	for kind, regs := range d.byKind {
		kept := regs[:0]
		for _, r := range regs {
			if r.system == system {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		d.byKind[kind] = kept
	}
	return removed
}

// invoke runs a single handler, converting a panic into an error so one
// faulting system cannot take down the cycle. Sandboxed systems fault via
// error returns; the recover path covers in-process systems.
func invoke(ctx context.Context, fn Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return fn(ctx, payload)
}
