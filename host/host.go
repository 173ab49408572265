package host

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
	"github.com/plumehq/plume/dispatch"
	"github.com/plumehq/plume/engine"
	"github.com/plumehq/plume/errors"
	"github.com/plumehq/plume/resolver"
	"github.com/plumehq/plume/traits"
)

type instanceEntry struct {
	name   string
	system plume.System
}

// Host orchestrates the full session lifecycle: descriptor collection,
// resolution, instantiation with context handle issuance, event handler
// registration, the recurring dispatch cycle, and reverse-order teardown.
//
// Host is not safe for concurrent use; it owns the two-phase lifecycle of
// the registry and dispatcher.
type Host struct {
	cfg        Config
	log        *zap.Logger
	engine     *engine.Engine
	factories  []Factory
	registry   *capability.Registry
	dispatcher *dispatch.Dispatcher
	instances  []instanceEntry
	order      []string
	evicted    map[string]bool
	started    bool
	closed     bool
	cycles     uint64
	faults     uint64
}

// New creates a host with the given configuration. A nil logger disables
// logging.
func New(cfg Config, log *zap.Logger) (*Host, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.InvalidInput(errors.PhaseHost, err.Error())
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{
		cfg:        cfg.withDefaults(),
		log:        log,
		registry:   capability.NewRegistry(),
		dispatcher: dispatch.New(),
		evicted:    make(map[string]bool),
	}, nil
}

// AddFactory registers a system type for the session. All factories must be
// added before Start.
func (h *Host) AddFactory(f Factory) error {
	if h.started {
		return errors.Sealed(errors.PhaseHost, "host")
	}
	if f.New == nil {
		return errors.InvalidInput(errors.PhaseHost, "factory for "+f.Descriptor.Name+" has no constructor")
	}
	h.factories = append(h.factories, f)
	return nil
}

// Start resolves the descriptor set for the configured target and, on
// success, instantiates every selected system in dependency order, issuing
// each exactly one context handle and registering its capabilities and
// event handlers. Any resolution error surfaces here, before any system is
// instantiated; an instantiation failure tears down the partially built
// session and rejects the set.
func (h *Host) Start(ctx context.Context) error {
	if h.started {
		return errors.InvalidInput(errors.PhaseHost, "host already started")
	}

	selected := make([]plume.Descriptor, 0, len(h.factories))
	byName := make(map[string]Factory, len(h.factories))
	for _, f := range h.factories {
		if !f.Descriptor.MatchesTarget(h.cfg.Target) {
			continue
		}
		selected = append(selected, f.Descriptor)
		byName[f.Descriptor.Name] = f
	}

	order, err := resolver.Resolve(selected)
	if err != nil {
		h.log.Error("system set rejected", zap.Error(err))
		return err
	}
	h.started = true

	h.order = make([]string, len(order))
	for i, d := range order {
		h.order[i] = d.Name
	}
	h.log.Info("resolved system set",
		zap.String("target", string(h.cfg.Target)),
		zap.Strings("order", h.order))

	for _, desc := range order {
		f := byName[desc.Name]
		handle := h.registry.Issue(desc)

		sys, err := f.New(ctx, handle)
		if err != nil {
			h.teardown(ctx)
			return errors.Instantiation(desc.Name, err)
		}
		h.instances = append(h.instances, instanceEntry{name: desc.Name, system: sys})

		for _, capID := range desc.Provides {
			iface := sys.Expose(capID)
			if iface == nil {
				h.teardown(ctx)
				return errors.InvalidDescriptor(desc.Name, "declared provider exposes nil for "+string(capID))
			}
			if err := h.registry.Register(capID, desc.Name, iface); err != nil {
				h.teardown(ctx)
				return err
			}
		}

		for _, binding := range desc.Handlers {
			sys, idx := sys, binding.Handler
			err := h.dispatcher.Register(desc.Name, binding.Event,
				func(ctx context.Context, payload any) error {
					return sys.HandleEvent(ctx, idx, payload)
				})
			if err != nil {
				h.teardown(ctx)
				return err
			}
		}

		h.log.Debug("system instantiated", zap.String("system", desc.Name))
	}

	h.registry.Seal()
	h.dispatcher.Seal()
	return nil
}

// Dispatch runs one synchronous cycle for kind and applies the fault
// policy to any reported faults. Under FaultAbort the first fault is
// returned as an error; otherwise Dispatch only returns the reports.
func (h *Host) Dispatch(ctx context.Context, kind plume.EventKind, payload any) ([]dispatch.FaultReport, error) {
	if !h.started {
		return nil, errors.NotInitialized(errors.PhaseDispatch, "host")
	}
	h.cycles++

	faults := h.dispatcher.Dispatch(ctx, kind, payload)
	for _, fault := range faults {
		h.faults++
		h.log.Error("handler fault",
			zap.String("system", fault.System),
			zap.String("event", string(fault.Event)),
			zap.Error(fault.Err))

		switch h.cfg.FaultPolicy {
		case FaultEvict:
			if !h.evicted[fault.System] {
				h.evicted[fault.System] = true
				removed := h.dispatcher.Evict(fault.System)
				h.log.Warn("system evicted from dispatch",
					zap.String("system", fault.System),
					zap.Int("handlers_removed", removed))
			}
		case FaultAbort:
			return faults, fault.Err
		case FaultIgnore:
		}
	}
	return faults, nil
}

// Tick runs one cycle of the target's recurring event: the frame event on
// client targets, the tick event on server targets.
func (h *Host) Tick(ctx context.Context) ([]dispatch.FaultReport, error) {
	if h.cfg.Target == plume.TargetServer {
		return h.Dispatch(ctx, plume.EventTick, traits.TickEvent{})
	}
	return h.Dispatch(ctx, plume.EventFrame, traits.FrameEvent{})
}

// Run drives the recurring dispatch cycle at the configured tick rate until
// ctx is done or, under FaultAbort, a handler faults. The cycle cadence is
// host policy; handlers observe only the dispatch order guarantee.
func (h *Host) Run(ctx context.Context) error {
	if !h.started {
		return errors.NotInitialized(errors.PhaseHost, "host")
	}

	interval := time.Second / time.Duration(h.cfg.TickRate)
	if h.cfg.Target == plume.TargetServer {
		interval = h.cfg.TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := h.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// Close destroys all system instances in reverse instantiation order, so no
// instance outlives a capability it depends on. Safe to call more than once.
func (h *Host) Close(ctx context.Context) error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.teardown(ctx)
	if h.engine != nil {
		return h.engine.Close(ctx)
	}
	return nil
}

func (h *Host) teardown(ctx context.Context) {
	for i := len(h.instances) - 1; i >= 0; i-- {
		entry := h.instances[i]
		if err := entry.system.Close(ctx); err != nil {
			h.log.Warn("system close failed",
				zap.String("system", entry.name),
				zap.Error(err))
		}
	}
	h.instances = nil
}

// Config returns the effective configuration, with defaults applied.
func (h *Host) Config() Config {
	return h.cfg
}

// Order returns the resolved instantiation order. Valid after Start.
func (h *Host) Order() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Cycles returns the number of dispatch cycles run so far.
func (h *Host) Cycles() uint64 {
	return h.cycles
}

// FaultCount returns the total number of handler faults observed.
func (h *Host) FaultCount() uint64 {
	return h.faults
}

// Evicted returns the names of systems removed from dispatch by the fault
// policy.
func (h *Host) Evicted() []string {
	out := make([]string, 0, len(h.evicted))
	for _, name := range h.order {
		if h.evicted[name] {
			out = append(out, name)
		}
	}
	return out
}
