package engine

import (
	"context"
	"encoding/json"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// Guest export names forming the plugin contract.
const (
	exportAlloc    = "plume_alloc"
	exportDescribe = "plume_describe"
	exportNew      = "plume_new"
	exportHandle   = "plume_handle"
	exportInvoke   = "plume_invoke"
)

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per sandboxed unit in pages
	// (64KB each). 0 means the wazero default.
	MemoryLimitPages uint32
}

// Engine is the sandboxed-execution facility: it compiles plugin binaries
// and instantiates one isolated wazero module per plugin.
type Engine struct {
	runtime wazero.Runtime
}

// New creates a wazero-backed engine. The plume:host import module and a
// WASI preview1 shim are instantiated up front so any guest can link
// against them.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	e := &Engine{runtime: rt}

	if err := e.instantiateHostModule(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Load("instantiate plume:host", err)
	}
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	return e, nil
}

// Close releases the runtime and every module instantiated from it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Load compiles a plugin binary, instantiates its sandboxed unit, and reads
// the static descriptor from the plume_describe export. The system itself
// is not constructed until Module.Instantiate runs in resolved order.
func (e *Engine) Load(ctx context.Context, name string, wasm []byte) (*Module, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile plugin module", err)
	}

	modCfg := wazero.NewModuleConfig().WithName(name).WithStartFunctions("_initialize", "_start")
	instance, err := e.runtime.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Load("instantiate sandboxed unit", err)
	}

	mod := &Module{engine: e, instance: instance}

	for _, export := range []string{exportAlloc, exportDescribe, exportNew, exportHandle} {
		if instance.ExportedFunction(export) == nil {
			_ = instance.Close(ctx)
			return nil, errors.MissingExport(name, export)
		}
	}

	desc, err := mod.describe(ctx)
	if err != nil {
		_ = instance.Close(ctx)
		return nil, err
	}
	mod.desc = desc

	Logger().Info("plugin module loaded",
		zap.String("module", name),
		zap.String("system", desc.Name))
	return mod, nil
}

func decodeDescriptor(data []byte) (plume.Descriptor, error) {
	var desc plume.Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return plume.Descriptor{}, errors.ParseFailed("descriptor", err)
	}
	if desc.Name == "" {
		return plume.Descriptor{}, errors.InvalidDescriptor("", "descriptor has no name")
	}
	return desc, nil
}
