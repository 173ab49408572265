// Package engine hosts plugin modules in wazero sandboxes.
//
// Each plugin gets its own wazero module instance with independent linear
// memory; systems never share memory. All traffic across the boundary is
// marshaled as JSON frames: the host delivers events through the guest's
// plume_handle export, and guests reach their declared capabilities through
// the plume:host/capability_call import, which routes through the owning
// instance's context handle so capability scoping holds even against a
// misbehaving guest.
//
// # Guest export contract
//
//	plume_alloc(size u32) -> ptr u32          frame allocator
//	plume_describe() -> u64                   packed ptr/len of descriptor JSON
//	plume_new() -> i32                        construct the system, 0 on success
//	plume_handle(handler, ptr, len u32) -> i32  deliver one event frame
//	plume_invoke(ptr, len u32) -> u64         serve a capability call (providers only)
//
// The binary module format beyond these exports is out of scope.
package engine
