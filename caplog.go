package caplog

import (
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/roadrunner-server/errors"
	"go.uber.org/zap"

	"github.com/go-caplog/caplog/capture"
)

var (
	registerOnce sync.Once

	store    = capture.NewStore()
	zcore    *capture.ZapCore
	shandler *capture.SlogHandler
)

// ensureRegistered installs the capture sinks behind the process-wide
// facades exactly once, then verifies on every call that the globals still
// point at them. zap.ReplaceGlobals and slog.SetDefault cannot fail on
// install the way a facade with a one-shot registration slot can, so a
// conflicting sink installed by outside code is caught here, on the next
// Start, and aborts handle construction.
func ensureRegistered() error {
	const op = errors.Op("caplog_register")

	registerOnce.Do(func() {
		zcore = capture.NewZapCore(store)
		shandler = capture.NewSlogHandler(store)
		zap.ReplaceGlobals(zap.New(zcore, zap.AddCaller()))
		slog.SetDefault(slog.New(shandler))
	})

	if zap.L().Core() != zcore {
		return errors.E(op, errors.Str("a different global zap core is installed, captured-log assertions would be unreliable"))
	}
	if slog.Default().Handler() != shandler {
		return errors.E(op, errors.Str("a different default slog handler is installed, captured-log assertions would be unreliable"))
	}

	return nil
}

// Handle is a scoped view over the calling goroutine's captured events.
// Multiple live handles on one goroutine share the same buffer, so clearing
// through any of them clears it for all; the expected usage is one handle
// per test. A handle must be released with [Handle.Stop] (or obtained via
// [For], which registers Stop as a test cleanup) so the buffer never leaks
// into the next test running on the same goroutine.
type Handle struct {
	store *capture.Store
}

// Start registers the capture sinks if needed and returns a new handle. The
// buffer is left as-is: a previous handle's Stop already cleared it. The only
// error is a registration conflict, which is fatal for the process, not
// retryable.
func Start() (*Handle, error) {
	const op = errors.Op("caplog_start")

	if err := ensureRegistered(); err != nil {
		return nil, errors.E(op, err)
	}

	return &Handle{store: store}, nil
}

// For returns a handle whose Stop runs automatically when the test scope
// ends, on every exit path including failures. A registration conflict fails
// the test immediately.
func For(t testing.TB) *Handle {
	t.Helper()

	h, err := Start()
	if err != nil {
		t.Fatalf("caplog: %v", err)
	}
	t.Cleanup(h.Stop)

	return h
}

// GetAll returns every event in the calling goroutine's buffer, in emission
// order, as an independent copy.
func (h *Handle) GetAll() []capture.Event {
	return h.store.Snapshot()
}

// Find returns the events for which pred holds, preserving emission order.
func (h *Handle) Find(pred func(capture.Event) bool) []capture.Event {
	all := h.store.Snapshot()
	out := make([]capture.Event, 0, len(all))
	for _, ev := range all {
		if pred(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Last returns the most recently captured event, if any.
func (h *Handle) Last() (capture.Event, bool) {
	all := h.store.Snapshot()
	if len(all) == 0 {
		return capture.Event{}, false
	}
	return all[len(all)-1], true
}

// Count returns the number of captured events at the given level.
func (h *Handle) Count(lvl capture.Level) int {
	return len(h.Find(MatchLevel(lvl)))
}

// Has reports whether any captured event has the given level and contains
// substr in its message.
func (h *Handle) Has(lvl capture.Level, substr string) bool {
	for _, ev := range h.store.Snapshot() {
		if ev.Level == lvl && strings.Contains(ev.Message, substr) {
			return true
		}
	}
	return false
}

// Clear empties the calling goroutine's buffer. Safe to call repeatedly and
// on an already-empty buffer.
func (h *Handle) Clear() {
	h.store.Clear()
}

// Stop releases the handle, clearing the calling goroutine's buffer.
// Idempotent.
func (h *Handle) Stop() {
	h.store.Clear()
}

// Dump renders the buffer as indented JSON, for logging on a failed
// assertion.
func (h *Handle) Dump() string {
	return capture.Dump(h.store.Snapshot())
}
