// Package capability implements the capability registry and the scoped
// context handles issued to system instances.
//
// The registry records, as each system finishes construction, the interface
// it exposes under every capability identifier it provides; entries are
// insert-once and the registry is sealed read-only before dispatch begins.
// Handles enforce capability scoping: a lookup for an undeclared identifier
// is a contract violation, never a way to discover extra capabilities.
package capability
