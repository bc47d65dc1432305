package trello

import (
	"go.uber.org/zap"
)

// CallEvent records metadata about a single Trello API call.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Cached    bool
	Success   bool
	ErrorCode string
}

// Observer receives events about Trello calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("method", event.Method),
		zap.String("path", event.Path),
		zap.Int("status", event.Status),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Bool("cached", event.Cached),
	}
	if !event.Success {
		o.logger.Warn("trello call failed", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Debug("trello call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
