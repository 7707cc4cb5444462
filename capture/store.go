package capture

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Store holds one append-only event buffer per goroutine. Every operation is
// implicitly scoped to the calling goroutine: an emission lands in the
// emitter's buffer and queries only ever see the caller's own buffer, so
// parallel tests never observe each other's events and the buffers themselves
// need no locking.
//
// A buffer whose goroutine exits without a Clear stays in the index (Go has
// no goroutine-exit hook); handles clear on scope exit, which keeps the index
// bounded in practice.
type Store struct {
	bufs sync.Map // goroutine id -> *buffer
}

// buffer is only ever touched by its owning goroutine.
type buffer struct {
	events []Event
}

func NewStore() *Store {
	return &Store{}
}

// Append adds ev to the calling goroutine's buffer, creating the buffer on
// first use.
func (s *Store) Append(ev Event) {
	id := goroutineID()
	v, ok := s.bufs.Load(id)
	if !ok {
		v, _ = s.bufs.LoadOrStore(id, &buffer{})
	}
	b := v.(*buffer)
	b.events = append(b.events, ev)
}

// Snapshot returns an independent copy of the calling goroutine's buffer in
// emission order. Mutating the result does not affect the buffer.
func (s *Store) Snapshot() []Event {
	v, ok := s.bufs.Load(goroutineID())
	if !ok {
		return nil
	}
	b := v.(*buffer)
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Clear empties the calling goroutine's buffer. Clearing an empty or
// never-written buffer is a no-op.
func (s *Store) Clear() {
	s.bufs.Delete(goroutineID())
}

// goroutineID parses the current goroutine's id from the stack trace header,
// "goroutine 123 [running]:". There is no supported API for goroutine
// identity; the header format is stable and this parse is the established
// technique for goroutine-scoped state.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		panic("capture: malformed goroutine stack header")
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		panic("capture: malformed goroutine stack header: " + err.Error())
	}
	return id
}
