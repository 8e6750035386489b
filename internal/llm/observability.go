package llm

import "log/slog"

// LLMCallEvent records metadata about a single model invocation.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about model calls for logging.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes call events through a structured logger.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an Observer that logs events to l, or to the
// default logger when l is nil.
func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{log: l}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if event.Success {
		o.log.Info("llm call", attrs...)
		return
	}
	o.log.Warn("llm call failed", append(attrs, "error_code", event.ErrorCode)...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
