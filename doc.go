// Package caplog captures log emissions during tests so they can be asserted
// on, without writing them to any real destination.
//
// The central type is [Handle], obtained via [Start] or [For]. Constructing
// the first handle installs the capture sinks behind the process-wide logging
// facades (zap's globals and slog's default) exactly once per process; the
// sinks accept every severity, so the facade never pre-filters an emission
// before the capture sees it.
//
// Captured events are buffered per goroutine: a test only ever observes its
// own emissions, which makes the capture safe for parallel test execution
// without any coordination between tests. [Handle.GetAll] returns the buffer
// in emission order and [Handle.Find] filters it by predicate. [Handle.Stop]
// clears the buffer so nothing leaks into the next test sharing the
// goroutine; handles from [For] stop automatically on test cleanup.
package caplog
