package plume

// CapabilityID is a stable, globally unique token identifying an interface
// a system may provide or require, e.g. "plume:timing/frame-timing".
// At most one active provider per CapabilityID exists within a system set.
type CapabilityID string

// EventKind is a stable token identifying an event channel,
// e.g. "plume:timing/frame".
type EventKind string

// Target selects which deployment target a system is instantiated on.
type Target string

const (
	TargetClient Target = "client"
	TargetServer Target = "server"
)

// Well-known capability and event identifiers provided by the builtin
// systems. Plugin descriptors reference these by value.
const (
	CapFrameTiming CapabilityID = "plume:timing/frame-timing"
	CapTickTiming  CapabilityID = "plume:timing/tick-timing"
	CapLogger      CapabilityID = "plume:log/logger"
	CapInput       CapabilityID = "plume:input/input"
	CapCamera      CapabilityID = "plume:camera/camera"
	CapGui         CapabilityID = "plume:gui/gui"

	EventFrame EventKind = "plume:timing/frame"
	EventTick  EventKind = "plume:timing/tick"
)

// EventBinding declares one event handler of a system. Handler is the
// system-local handler index passed back on dispatch; bindings are kept in
// declaration order, which is the within-system dispatch order.
type EventBinding struct {
	Event   EventKind `json:"event"`
	Handler uint32    `json:"handler"`
}

// Descriptor is the static metadata of a system type: what it provides,
// what it requires, and which events it handles. A descriptor is fixed when
// the plugin module is compiled and is discoverable before instantiation.
type Descriptor struct {
	// Name uniquely identifies the system type within a manifest.
	Name string `json:"name"`

	// Provides lists capabilities this system exposes to others.
	Provides []CapabilityID `json:"provides,omitempty"`

	// Requires lists capabilities that must be satisfied by another system
	// in the active set; they order this system after its providers.
	Requires []CapabilityID `json:"requires,omitempty"`

	// Optional lists capabilities resolved best-effort: lookups return an
	// explicit "unavailable" result when no provider is in the set.
	Optional []CapabilityID `json:"optional,omitempty"`

	// Handlers lists event bindings in declaration order.
	Handlers []EventBinding `json:"handlers,omitempty"`

	// Targets restricts which deployment targets instantiate this system.
	// Empty means all targets.
	Targets []Target `json:"targets,omitempty"`
}

// DeclaredSet returns the union of required and optional capabilities, the
// set a context handle issued for this descriptor may reach.
func (d Descriptor) DeclaredSet() map[CapabilityID]bool {
	set := make(map[CapabilityID]bool, len(d.Requires)+len(d.Optional))
	for _, id := range d.Requires {
		set[id] = true
	}
	for _, id := range d.Optional {
		set[id] = true
	}
	return set
}

// Declares reports whether id is in the descriptor's declared dependency set.
func (d Descriptor) Declares(id CapabilityID) bool {
	for _, c := range d.Requires {
		if c == id {
			return true
		}
	}
	for _, c := range d.Optional {
		if c == id {
			return true
		}
	}
	return false
}

// IsOptional reports whether id was declared optional by this descriptor.
func (d Descriptor) IsOptional(id CapabilityID) bool {
	for _, c := range d.Optional {
		if c == id {
			return true
		}
	}
	return false
}

// MatchesTarget reports whether the descriptor should be instantiated on
// the given target.
func (d Descriptor) MatchesTarget(t Target) bool {
	if len(d.Targets) == 0 {
		return true
	}
	for _, dt := range d.Targets {
		if dt == t {
			return true
		}
	}
	return false
}
