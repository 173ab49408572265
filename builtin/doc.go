// Package builtin provides the host-side systems most sessions need: frame
// and tick timing providers and a console logger. They are ordinary systems
// with descriptors and event handlers, resolved and dispatched like any
// plugin, just constructed in-process.
package builtin
