package capture

import (
	"go.uber.org/zap/zapcore"
)

// ZapTraceLevel is the level to log at for a trace-severity capture; zap has
// no trace level of its own, so anything below Debug is treated as trace.
const ZapTraceLevel = zapcore.Level(-2)

// ZapCore is a zapcore.Core that records every entry into the calling
// goroutine's buffer. It is enabled at every level so the facade never
// pre-filters an emission before the capture sees it, and it writes to no
// external sink.
type ZapCore struct {
	store *Store
}

func NewZapCore(s *Store) *ZapCore {
	return &ZapCore{store: s}
}

func (c *ZapCore) Enabled(_ zapcore.Level) bool {
	return true
}

// With ignores accumulated fields: assertions run against level, message and
// call site, which fields do not alter.
func (c *ZapCore) With(_ []zapcore.Field) zapcore.Core {
	return c
}

func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, c)
}

func (c *ZapCore) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	ev := Event{
		Level:   levelFromZap(ent.Level),
		Target:  ent.LoggerName,
		Message: ent.Message,
	}
	if ent.Caller.Defined {
		ev.Module = packageOf(ent.Caller.Function)
		ev.File = ent.Caller.File
		ev.Line = ent.Caller.Line
	}
	if ev.Target == "" {
		ev.Target = ev.Module
	}
	c.store.Append(ev)
	return nil
}

func (c *ZapCore) Sync() error {
	return nil
}

func levelFromZap(l zapcore.Level) Level {
	switch {
	case l < zapcore.DebugLevel:
		return Trace
	case l == zapcore.DebugLevel:
		return Debug
	case l == zapcore.InfoLevel:
		return Info
	case l == zapcore.WarnLevel:
		return Warn
	default:
		// ErrorLevel and the panic family all land on Error.
		return Error
	}
}
