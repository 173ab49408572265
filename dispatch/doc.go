// Package dispatch delivers typed events to registered system handlers in a
// deterministic order: instantiation order across systems, declaration order
// within one. Handler faults are isolated and reported, never propagated
// into other systems' handlers.
package dispatch
