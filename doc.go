// Package plume implements a capability-oriented plugin component model.
//
// A host process loads isolated, sandboxed plugin modules ("systems") that
// declare typed dependencies on capabilities exposed by other systems. The
// host resolves those dependencies into a deterministic instantiation order,
// issues each system a capability-scoped context handle, and dispatches
// timed events to registered handlers in a deterministic order.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	plume/               Root package with the plugin contract types
//	├── resolver/        Dependency resolution and instantiation ordering
//	├── capability/      Capability registry and scoped context handles
//	├── dispatch/        Deterministic event dispatch with fault isolation
//	├── host/            Host loop orchestrating load, resolve, run, teardown
//	├── engine/          wazero-backed sandboxed execution units
//	├── traits/          Capability contracts (timing, logging, input, ...)
//	├── builtin/         Host-provided systems implementing common traits
//	├── manifest/        Per-target system selection lists
//	└── errors/          Structured error types for diagnostics
//
// # Quick Start
//
// Assemble a host from built-in systems and plugin modules:
//
//	h, err := host.New(host.Config{Target: plume.TargetClient}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h.AddFactory(builtin.FrameTimingSystem())
//	h.LoadModule(ctx, "hud", wasmBytes)
//
//	if err := h.Start(ctx); err != nil {
//	    log.Fatal(err) // UnresolvedCapability, DependencyCycle, ...
//	}
//	defer h.Close(ctx)
//
//	h.Run(ctx) // tick loop until ctx is done
//
// # Isolation Model
//
// Each plugin module runs in its own wazero module instance with its own
// linear memory. Systems never share mutable state; all cross-system
// interaction goes through capability lookups on a context handle, and
// calls across the sandbox boundary are marshaled as encoded frames.
//
// # Thread Safety
//
// The registry and dispatcher follow a strict two-phase lifecycle: they are
// mutated only during the single-threaded instantiation phase and are sealed
// read-only before the first dispatch cycle. Host is not safe for concurrent
// use; it owns the phase transitions.
package plume
