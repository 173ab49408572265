package builtin

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/traits"
)

func TestFrameClockAdvances(t *testing.T) {
	ctx := context.Background()
	f := FrameTimingSystem()

	if f.Descriptor.Provides[0] != plume.CapFrameTiming {
		t.Fatalf("descriptor provides %v", f.Descriptor.Provides)
	}

	sys, err := f.New(ctx, nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	clock := sys.(*frameClock)
	base := time.Now()
	fake := base
	clock.started = base
	clock.now = func() time.Time { return fake }

	timing, ok := sys.Expose(plume.CapFrameTiming).(traits.FrameTiming)
	if !ok {
		t.Fatal("expose should satisfy traits.FrameTiming")
	}

	fake = base.Add(16 * time.Millisecond)
	if err := sys.HandleEvent(ctx, 0, traits.FrameEvent{}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if timing.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", timing.FrameCount())
	}
	if timing.LastFrame() != 16*time.Millisecond {
		t.Errorf("LastFrame() = %v, want 16ms", timing.LastFrame())
	}

	fake = base.Add(26 * time.Millisecond)
	sys.HandleEvent(ctx, 0, traits.FrameEvent{})
	if timing.FrameDuration() != 10*time.Millisecond {
		t.Errorf("FrameDuration() = %v, want 10ms", timing.FrameDuration())
	}
	if timing.FrameCount() != 2 {
		t.Errorf("FrameCount() = %d, want 2", timing.FrameCount())
	}
}

func TestFrameClockUnknownHandler(t *testing.T) {
	sys, _ := FrameTimingSystem().New(context.Background(), nil)
	if err := sys.HandleEvent(context.Background(), 7, nil); err == nil {
		t.Fatal("expected unknown handler index to fault")
	}
}

func TestTickClock(t *testing.T) {
	ctx := context.Background()
	f := TickTimingSystem(50 * time.Millisecond)

	if f.Descriptor.Targets[0] != plume.TargetServer {
		t.Fatalf("tick timing should be server-side, got %v", f.Descriptor.Targets)
	}

	sys, err := f.New(ctx, nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	clock := sys.(*tickClock)
	base := time.Now()
	clock.started = base
	clock.now = func() time.Time { return base.Add(100 * time.Millisecond) }

	timing := sys.Expose(plume.CapTickTiming).(traits.TickTiming)
	if timing.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v", timing.Interval())
	}

	sys.HandleEvent(ctx, 0, traits.TickEvent{})
	if timing.TickCount() != 1 {
		t.Errorf("TickCount() = %d, want 1", timing.TickCount())
	}
	if timing.LastTick() != 100*time.Millisecond {
		t.Errorf("LastTick() = %v, want 100ms", timing.LastTick())
	}
	if timing.NextTick() != 150*time.Millisecond {
		t.Errorf("NextTick() = %v, want 150ms", timing.NextTick())
	}
}

func TestLoggerSystem(t *testing.T) {
	sys, err := LoggerSystem(zap.NewNop()).New(context.Background(), nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	logger, ok := sys.Expose(plume.CapLogger).(traits.Logger)
	if !ok {
		t.Fatal("expose should satisfy traits.Logger")
	}
	// All levels route without panicking.
	for level := traits.LevelTrace; level <= traits.LevelError; level++ {
		logger.Log(level, "hello")
	}

	if sys.Expose(plume.CapGui) != nil {
		t.Error("logger must not expose capabilities it does not provide")
	}
}
