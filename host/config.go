package host

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/plumehq/plume"
)

// FaultPolicy decides what the host loop does with a faulting system.
type FaultPolicy string

const (
	// FaultEvict permanently removes the faulting system's handlers from
	// future dispatch. The default.
	FaultEvict FaultPolicy = "evict"

	// FaultIgnore logs the fault and keeps dispatching to the system.
	FaultIgnore FaultPolicy = "ignore"

	// FaultAbort terminates the session on the first fault.
	FaultAbort FaultPolicy = "abort"
)

// Config holds host runtime configuration. Values load from the
// environment via FromEnv; zero values fall back to defaults in New.
type Config struct {
	// Target selects which systems from the descriptor set to instantiate.
	Target plume.Target `env:"PLUME_TARGET" envDefault:"client"`

	// TickRate is the number of dispatch cycles per second driven by Run.
	TickRate int `env:"PLUME_TICK_RATE" envDefault:"60"`

	// TickInterval is the fixed server tick interval.
	TickInterval time.Duration `env:"PLUME_TICK_INTERVAL" envDefault:"50ms"`

	// FaultPolicy decides eviction behavior for faulting systems.
	FaultPolicy FaultPolicy `env:"PLUME_FAULT_POLICY" envDefault:"evict"`

	// MemoryLimitPages caps each sandboxed unit's linear memory, in 64KB
	// pages. 0 means the engine default.
	MemoryLimitPages uint32 `env:"PLUME_MEMORY_LIMIT_PAGES" envDefault:"1024"`
}

// FromEnv loads configuration from PLUME_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse host config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.FaultPolicy {
	case FaultEvict, FaultIgnore, FaultAbort, "":
	default:
		return fmt.Errorf("unknown fault policy %q", c.FaultPolicy)
	}
	if c.TickRate < 0 {
		return fmt.Errorf("tick rate must be non-negative, got %d", c.TickRate)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval must be non-negative, got %v", c.TickInterval)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Target == "" {
		c.Target = plume.TargetClient
	}
	if c.TickRate == 0 {
		c.TickRate = 60
	}
	if c.TickInterval == 0 {
		c.TickInterval = 50 * time.Millisecond
	}
	if c.FaultPolicy == "" {
		c.FaultPolicy = FaultEvict
	}
	return c
}
