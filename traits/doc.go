// Package traits declares the capability contracts consumed through context
// handles: frame and tick timing, logging, input, camera and GUI drawing.
//
// These are thin interfaces at the edge of the component model. The model
// itself never depends on them; providers register them in the capability
// registry like any other system, and consumers reach them with
// capability.Get against the well-known identifiers in the root package.
package traits
