package engine

import (
	"context"
	"encoding/json"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// hostModuleName is the import namespace every guest links against.
const hostModuleName = "plume:host"

// instantiateHostModule registers the host functions guests import:
// capability_call routes marshaled lookups through the calling instance's
// context handle, and log writes guest messages to the engine logger.
func (e *Engine) instantiateHostModule(ctx context.Context) error {
	_, err := e.runtime.NewHostModuleBuilder(hostModuleName).
		NewFunctionBuilder().
		WithFunc(capabilityCallHostFunc).
		Export("capability_call").
		NewFunctionBuilder().
		WithFunc(logHostFunc).
		Export("log").
		Instantiate(ctx)
	return err
}

// capabilityCallHostFunc serves plume:host/capability_call. The response
// frame is written back into the calling guest's memory; a zero return
// means the host could not produce a response at all.
func capabilityCallHostFunc(ctx context.Context, mod api.Module, ptr, length uint32) uint64 {
	inst := instanceFrom(ctx)
	if inst == nil {
		Logger().Error("capability_call outside a dispatch or construction context",
			zap.String("module", mod.Name()))
		return 0
	}

	resp := serveCapabilityCall(ctx, inst, mod.Memory(), ptr, length)

	data, err := json.Marshal(resp)
	if err != nil {
		Logger().Error("encode capability response", zap.Error(err))
		return 0
	}
	respPtr, err := writeFrame(ctx, mod, data)
	if err != nil {
		Logger().Error("write capability response", zap.Error(err))
		return 0
	}
	return packPtrLen(respPtr, uint32(len(data)))
}

func serveCapabilityCall(ctx context.Context, inst *Instance, mem api.Memory, ptr, length uint32) CallResponse {
	frame, err := readFrame(mem, ptr, length)
	if err != nil {
		return CallResponse{Error: err.Error()}
	}

	var req CallRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return CallResponse{Error: "malformed capability call frame: " + err.Error()}
	}

	resp := inst.capabilityCall(ctx, req)
	if resp.Error != "" {
		Logger().Warn("capability call failed",
			zap.String("system", inst.Name()),
			zap.String("capability", req.Capability),
			zap.String("method", req.Method),
			zap.String("error", resp.Error))
	}
	return resp
}

// logHostFunc serves plume:host/log. Levels follow traits.LogLevel.
func logHostFunc(ctx context.Context, mod api.Module, level, ptr, length uint32) {
	msg, err := readFrame(mod.Memory(), ptr, length)
	if err != nil {
		return
	}

	inst := instanceFrom(ctx)
	system := mod.Name()
	if inst != nil {
		system = inst.Name()
	}

	log := Logger().With(zap.String("system", system))
	switch level {
	case 0, 1:
		log.Debug(string(msg))
	case 2:
		log.Info(string(msg))
	case 3:
		log.Warn(string(msg))
	default:
		log.Error(string(msg))
	}
}
