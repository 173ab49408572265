package engine

import (
	"context"
	"encoding/json"

	"github.com/tetratelabs/wazero/api"

	"github.com/plumehq/plume/errors"
)

// Frames are length-prefixed only implicitly: every boundary crossing
// passes (ptr, len) pairs, packed into a single u64 for return values.

// CallRequest is the marshaled form of one capability invocation crossing
// the sandbox boundary.
type CallRequest struct {
	Capability string            `json:"capability"`
	Method     string            `json:"method"`
	Args       []json.RawMessage `json:"args,omitempty"`
}

// CallResponse carries the outcome back to the caller.
type CallResponse struct {
	OK bool `json:"ok"`

	// Unavailable is set when the capability was declared optional and no
	// provider exists in the active set.
	Unavailable bool `json:"unavailable,omitempty"`

	Error   string            `json:"error,omitempty"`
	Results []json.RawMessage `json:"results,omitempty"`
}

func packPtrLen(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

func unpackPtrLen(v uint64) (ptr, length uint32) {
	return uint32(v >> 32), uint32(v)
}

// readFrame copies a frame out of guest memory.
func readFrame(mem api.Memory, ptr, length uint32) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "frame pointer out of guest memory bounds")
	}
	// The view aliases guest memory; copy before the guest can touch it again.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// writeFrame allocates guest memory via plume_alloc and copies data in,
// returning the guest pointer.
func writeFrame(ctx context.Context, mod api.Module, data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}
	alloc := mod.ExportedFunction(exportAlloc)
	if alloc == nil {
		return 0, errors.MissingExport(mod.Name(), exportAlloc)
	}
	results, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, errors.Load("guest allocation failed", err)
	}
	ptr := uint32(results[0])
	if !mod.Memory().Write(ptr, data) {
		return 0, errors.InvalidInput(errors.PhaseDispatch, "guest allocator returned out-of-bounds pointer")
	}
	return ptr, nil
}
