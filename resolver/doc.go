// Package resolver turns a set of system descriptors into a deterministic
// instantiation order, or rejects the whole set with a typed resolution
// error. Resolution is pure over its inputs; no system is ever partially
// activated from a rejected set.
package resolver
