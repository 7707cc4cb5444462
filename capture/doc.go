// Package capture implements the core of the caplog test logger: the captured
// event model and the per-goroutine buffer store, plus the two facade sinks
// that feed it.
//
// [Event] is an immutable snapshot of one emission: severity mapped onto the
// five capture levels, target, formatted message, and call-site metadata.
// Events compare by value.
//
// [Store] keys buffers by goroutine identity, so isolation between parallel
// tests is structural rather than lock-based: an emission is only ever
// appended to the emitting goroutine's buffer, and queries only ever read the
// calling goroutine's buffer.
//
// [ZapCore] and [SlogHandler] adapt the store to the two logging facades.
// Both report themselves enabled at every level, so the capture sees every
// emission regardless of any ambient severity configuration, and neither
// writes to any real destination.
package capture
