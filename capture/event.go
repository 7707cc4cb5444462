package capture

import (
	"strings"

	"github.com/goccy/go-json"
)

// Level is the severity of a captured emission, ordered from the most to the
// least verbose.
type Level int8

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the level name, so Dump output stays readable.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Event is an immutable snapshot of a single log emission. Two events are
// equal iff all fields are equal; there is no identity beyond that.
type Event struct {
	// Level is the emission severity mapped onto the five capture levels.
	Level Level `json:"level"`
	// Target identifies the logical emitter: the zap logger name or the slog
	// target attribute when set, otherwise the emitting package path.
	Target string `json:"target"`
	// Message is the fully formatted message string.
	Message string `json:"message"`
	// Module is the package path of the emitting call site, empty when the
	// facade supplied no caller information.
	Module string `json:"module,omitempty"`
	// File and Line locate the call site. Line is 0 when unknown.
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
	// TraceID and SpanID are filled from the ambient span context when the
	// emission carried one (slog bridge only, zap entries have no context).
	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// Dump renders events as indented JSON, one use case: t.Log on a failed
// assertion to show everything the buffer held.
func Dump(events []Event) string {
	b, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		// Event has no unmarshalable fields, this cannot happen.
		return err.Error()
	}
	return string(b)
}

// packageOf extracts the package path from a runtime function name such as
// "github.com/acme/pkg.Fn" or "github.com/acme/pkg.(*T).Method".
func packageOf(fn string) string {
	if fn == "" {
		return ""
	}
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.IndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return fn
	}
	return fn[:slash+1+dot]
}
