package traits

// LogLevel determines the severity of a log message.
type LogLevel uint8

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger allows a system to write messages to the host's console output.
// Provided under plume.CapLogger.
type Logger interface {
	// Log prints a message with the specified level.
	Log(level LogLevel, message string)
}
