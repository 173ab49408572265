package traits

import "time"

// FrameTiming provides data about frame timings. Typically available only
// on the client target. Provided under plume.CapFrameTiming.
type FrameTiming interface {
	// FrameCount returns the number of frames since the timer started.
	FrameCount() uint64

	// FrameDuration returns the time the last frame took.
	FrameDuration() time.Duration

	// LastFrame returns when the previous frame ended, relative to when the
	// timer started.
	LastFrame() time.Duration
}

// TickTiming provides data about fixed-interval tick timings. Typically
// available only on the server target. Provided under plume.CapTickTiming.
type TickTiming interface {
	// Interval returns the interval at which this timer ticks.
	Interval() time.Duration

	// LastTick returns the last time a tick was emitted, relative to when
	// the timer started.
	LastTick() time.Duration

	// NextTick returns the next time a tick will be emitted, relative to
	// when the timer started.
	NextTick() time.Duration

	// TickCount returns the number of ticks since the timer started.
	TickCount() uint64
}

// FrameEvent is the payload delivered on plume.EventFrame. Timing data is
// read through the FrameTiming capability, not the payload.
type FrameEvent struct{}

// TickEvent is the payload delivered on plume.EventTick.
type TickEvent struct{}
