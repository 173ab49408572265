package builtin

import (
	"context"

	"go.uber.org/zap"

	"github.com/plumehq/plume"
	"github.com/plumehq/plume/capability"
	"github.com/plumehq/plume/host"
	"github.com/plumehq/plume/traits"
)

// consoleLogger provides traits.Logger on top of zap.
type consoleLogger struct {
	log *zap.Logger
}

// LoggerSystem returns the console logging provider backed by log. A nil
// logger disables output.
func LoggerSystem(log *zap.Logger) host.Factory {
	return host.Factory{
		Descriptor: plume.Descriptor{
			Name:     "plume.log.console",
			Provides: []plume.CapabilityID{plume.CapLogger},
		},
		New: func(ctx context.Context, handle *capability.Handle) (plume.System, error) {
			if log == nil {
				log = zap.NewNop()
			}
			return &consoleLogger{log: log}, nil
		},
	}
}

func (l *consoleLogger) Log(level traits.LogLevel, message string) {
	switch level {
	case traits.LevelTrace, traits.LevelDebug:
		l.log.Debug(message)
	case traits.LevelInfo:
		l.log.Info(message)
	case traits.LevelWarn:
		l.log.Warn(message)
	case traits.LevelError:
		l.log.Error(message)
	default:
		l.log.Info(message)
	}
}

func (l *consoleLogger) Expose(id plume.CapabilityID) any {
	if id == plume.CapLogger {
		return traits.Logger(l)
	}
	return nil
}

func (l *consoleLogger) HandleEvent(ctx context.Context, handler uint32, payload any) error {
	return nil
}

func (l *consoleLogger) Close(ctx context.Context) error {
	return nil
}
