package builtin

import (
	"context"
	"time"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
	"github.com/plumehq/plume/errors"
	"github.com/plumehq/plume/host"
)

// frameClock provides traits.FrameTiming. Its own frame handler advances the
// clock; because every consumer of frame timing depends on this system, the
// resolver orders it first and consumers observe the already-advanced values
// for the current cycle.
type frameClock struct {
	started time.Time
	now     func() time.Time
	frames  uint64
	last    time.Duration
	dur     time.Duration
}

// FrameTimingSystem returns the client-side frame timing provider. It
// handles plume.EventFrame to advance the clock.
func FrameTimingSystem() host.Factory {
	return host.Factory{
		Descriptor: plume.Descriptor{
			Name:     "plume.timing.frame",
			Provides: []plume.CapabilityID{plume.CapFrameTiming},
			Handlers: []plume.EventBinding{{Event: plume.EventFrame, Handler: 0}},
			Targets:  []plume.Target{plume.TargetClient},
		},
		New: func(ctx context.Context, handle *capability.Handle) (plume.System, error) {
			return &frameClock{started: time.Now(), now: time.Now}, nil
		},
	}
}

func (c *frameClock) FrameCount() uint64 {
	return c.frames
}

func (c *frameClock) FrameDuration() time.Duration {
	return c.dur
}

func (c *frameClock) LastFrame() time.Duration {
	return c.last
}

func (c *frameClock) Expose(id plume.CapabilityID) any {
	if id == plume.CapFrameTiming {
		return c
	}
	return nil
}

func (c *frameClock) HandleEvent(ctx context.Context, handler uint32, payload any) error {
	if handler != 0 {
		return errors.NotFound(errors.PhaseDispatch, "handler", "frame clock handler")
	}
	elapsed := c.now().Sub(c.started)
	c.dur = elapsed - c.last
	c.last = elapsed
	c.frames++
	return nil
}

func (c *frameClock) Close(ctx context.Context) error {
	return nil
}

// tickClock provides traits.TickTiming on the server target.
type tickClock struct {
	interval time.Duration
	started  time.Time
	now      func() time.Time
	ticks    uint64
	last     time.Duration
}

// TickTimingSystem returns the server-side tick timing provider with a
// fixed interval. It handles plume.EventTick to advance the clock.
func TickTimingSystem(interval time.Duration) host.Factory {
	return host.Factory{
		Descriptor: plume.Descriptor{
			Name:     "plume.timing.tick",
			Provides: []plume.CapabilityID{plume.CapTickTiming},
			Handlers: []plume.EventBinding{{Event: plume.EventTick, Handler: 0}},
			Targets:  []plume.Target{plume.TargetServer},
		},
		New: func(ctx context.Context, handle *capability.Handle) (plume.System, error) {
			return &tickClock{
				interval: interval,
				started:  time.Now(),
				now:      time.Now,
			}, nil
		},
	}
}

func (c *tickClock) Interval() time.Duration {
	return c.interval
}

func (c *tickClock) LastTick() time.Duration {
	return c.last
}

func (c *tickClock) NextTick() time.Duration {
	return c.last + c.interval
}

func (c *tickClock) TickCount() uint64 {
	return c.ticks
}

func (c *tickClock) Expose(id plume.CapabilityID) any {
	if id == plume.CapTickTiming {
		return c
	}
	return nil
}

func (c *tickClock) HandleEvent(ctx context.Context, handler uint32, payload any) error {
	if handler != 0 {
		return errors.NotFound(errors.PhaseDispatch, "handler", "tick clock handler")
	}
	c.last = c.now().Sub(c.started)
	c.ticks++
	return nil
}

func (c *tickClock) Close(ctx context.Context) error {
	return nil
}
