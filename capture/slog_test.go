package capture

import (
	"context"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSlogHandlerIsEnabledAtEveryLevel(t *testing.T) {
	h := NewSlogHandler(NewStore())

	for _, lvl := range []slog.Level{SlogLevelTrace, slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		require.True(t, h.Enabled(context.Background(), lvl))
	}
}

func TestSlogHandlerCapturesEveryLevelExactlyOnce(t *testing.T) {
	s := NewStore()
	t.Cleanup(s.Clear)
	log := slog.New(NewSlogHandler(s))
	ctx := context.Background()

	log.Log(ctx, SlogLevelTrace, "foo")
	log.Debug("foo")
	log.Info("foo")
	log.Warn("foo")
	log.Error("foo")

	events := s.Snapshot()
	require.Len(t, events, 5)
	for i, want := range []Level{Trace, Debug, Info, Warn, Error} {
		require.Equal(t, want, events[i].Level)
	}
}

func TestSlogRecordCarriesCallerMetadata(t *testing.T) {
	s := NewStore()
	t.Cleanup(s.Clear)
	log := slog.New(NewSlogHandler(s))

	_, file, line, _ := runtime.Caller(0)
	log.Info("test")

	events := s.Snapshot()
	require.Len(t, events, 1)
	require.Equal(t, Event{
		Level:   Info,
		Target:  "github.com/go-caplog/caplog/capture",
		Message: "test",
		Module:  "github.com/go-caplog/caplog/capture",
		File:    file,
		Line:    line + 1,
	}, events[0])
}

func TestSlogTargetAttribute(t *testing.T) {
	s := NewStore()
	t.Cleanup(s.Clear)
	log := slog.New(NewSlogHandler(s))

	log.Info("per record", TargetKey, "worker")
	log.With(TargetKey, "pool").Info("via attrs")
	log.WithGroup("grp").Info("via group")
	// explicit attribute wins over the group name
	log.WithGroup("grp").Info("override", TargetKey, "worker")

	events := s.Snapshot()
	require.Len(t, events, 4)
	require.Equal(t, "worker", events[0].Target)
	require.Equal(t, "pool", events[1].Target)
	require.Equal(t, "grp", events[2].Target)
	require.Equal(t, "worker", events[3].Target)
}

func TestSlogCapturesAmbientSpanContext(t *testing.T) {
	s := NewStore()
	t.Cleanup(s.Clear)
	log := slog.New(NewSlogHandler(s))

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("capture-test").Start(context.Background(), "op")
	log.InfoContext(ctx, "in span")
	span.End()

	log.Info("outside span")

	events := s.Snapshot()
	require.Len(t, events, 2)

	sc := span.SpanContext()
	require.Equal(t, sc.TraceID().String(), events[0].TraceID)
	require.Equal(t, sc.SpanID().String(), events[0].SpanID)

	require.Empty(t, events[1].TraceID)
	require.Empty(t, events[1].SpanID)
}
