package capture

import (
	"context"
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel/trace"
)

// SlogLevelTrace is the slog level captured as trace severity; slog defines
// no trace level, the convention is one step below Debug.
const SlogLevelTrace = slog.Level(-8)

// TargetKey is the attribute key that overrides an event's target for a
// single record, e.g. slog.Info("msg", capture.TargetKey, "worker").
const TargetKey = "target"

// SlogHandler is a slog.Handler that records every emission into the calling
// goroutine's buffer. It is enabled at every level. When the record's context
// carries a valid span, the event remembers the trace and span ids so tests
// can assert on log/span correlation.
type SlogHandler struct {
	store  *Store
	target string
}

func NewSlogHandler(s *Store) *SlogHandler {
	return &SlogHandler{store: s}
}

func (h *SlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	ev := Event{
		Level:   levelFromSlog(r.Level),
		Target:  h.target,
		Message: r.Message,
	}

	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		ev.Module = packageOf(frame.Function)
		ev.File = frame.File
		ev.Line = frame.Line
	}

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == TargetKey {
			ev.Target = a.Value.String()
			return false
		}
		return true
	})

	if ev.Target == "" {
		ev.Target = ev.Module
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		ev.TraceID = sc.TraceID().String()
		ev.SpanID = sc.SpanID().String()
	}

	h.store.Append(ev)
	return nil
}

// WithAttrs honors a target attribute; other attrs are ignored, assertions
// run against level, message and call site.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	for _, a := range attrs {
		if a.Key == TargetKey {
			next.target = a.Value.String()
		}
	}
	return &next
}

// WithGroup uses the group name as the target for records the derived
// handler captures; an explicit target attribute still wins per record.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.target = name
	return &next
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return Trace
	case l < slog.LevelInfo:
		return Debug
	case l < slog.LevelWarn:
		return Info
	case l < slog.LevelError:
		return Warn
	default:
		return Error
	}
}
