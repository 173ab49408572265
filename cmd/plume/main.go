package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/builtin"
	"github.com/plumehq/plume/host"
	"github.com/plumehq/plume/manifest"
)

func main() {
	var (
		manifestPath = flag.String("manifest", "", "Path to the target selection manifest (JSON)")
		modulesDir   = flag.String("modules", "", "Directory containing .wasm plugin modules")
		target       = flag.String("target", "", "Deployment target (overrides PLUME_TARGET)")
		runFor       = flag.Duration("for", 0, "Run duration (0 = until interrupted)")
		list         = flag.Bool("list", false, "Resolve and print the instantiation order, then exit")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: plume -manifest <file.json> [-modules dir] [-target client|server]")
		fmt.Fprintln(os.Stderr, "       plume -manifest <file.json> -list")
		fmt.Fprintln(os.Stderr, "       plume -manifest <file.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*manifestPath, *modulesDir, *target, *runFor, *list, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(manifestPath, modulesDir, targetOverride string, runFor time.Duration, listOnly, interactive bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := host.FromEnv()
	if err != nil {
		return err
	}
	if targetOverride != "" {
		cfg.Target = plume.Target(targetOverride)
	}

	logger := zap.NewNop()
	if !interactive {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	h, err := host.New(cfg, logger)
	if err != nil {
		return err
	}
	defer h.Close(context.Background())
	cfg = h.Config()

	if err := assemble(ctx, h, cfg, m, modulesDir, logger); err != nil {
		return err
	}

	if err := h.Start(ctx); err != nil {
		return err
	}

	if listOnly {
		fmt.Printf("Target: %s\n", cfg.Target)
		fmt.Println("Instantiation order:")
		for i, name := range h.Order() {
			fmt.Printf("  %2d. %s\n", i+1, name)
		}
		return nil
	}

	if interactive {
		return runInteractive(ctx, h, cfg)
	}

	if runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}

	logger.Info("session running",
		zap.String("target", string(cfg.Target)),
		zap.Int("tick_rate", cfg.TickRate))
	err = h.Run(ctx)
	if err == context.Canceled || err == context.DeadlineExceeded {
		return nil
	}
	return err
}

// assemble adds the built-in providers for the target plus every manifest-
// selected plugin module found in modulesDir. Manifest entries name systems;
// module files are matched by base name.
func assemble(ctx context.Context, h *host.Host, cfg host.Config, m *manifest.Manifest, modulesDir string, logger *zap.Logger) error {
	switch cfg.Target {
	case plume.TargetServer:
		if err := h.AddFactory(builtin.TickTimingSystem(cfg.TickInterval)); err != nil {
			return err
		}
	default:
		if err := h.AddFactory(builtin.FrameTimingSystem()); err != nil {
			return err
		}
	}
	if err := h.AddFactory(builtin.LoggerSystem(logger)); err != nil {
		return err
	}

	if modulesDir == "" {
		return nil
	}

	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		return fmt.Errorf("read modules directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wasm") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".wasm")
		if !m.Enabled(cfg.Target, name) {
			continue
		}
		wasm, err := os.ReadFile(filepath.Join(modulesDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read module %s: %w", entry.Name(), err)
		}
		if err := h.LoadModule(ctx, name, wasm); err != nil {
			return err
		}
	}
	return nil
}
