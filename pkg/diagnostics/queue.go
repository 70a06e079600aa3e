// Package diagnostics provides the off-audio-thread diagnostic channel: a
// lock-free single-producer/single-consumer queue fed by the audio thread
// and drained by a background logger goroutine. Nothing on the audio path
// may call fmt or a logger directly (spec.md §9: "Debug printing on the
// audio thread" must be re-architected), so every diagnostic event is a
// fixed-size, non-allocating TryPush into this queue instead.
package diagnostics

import "sync/atomic"

// EventKind identifies the shape of an Event without requiring a heap
// allocated string on the producer side.
type EventKind int

const (
	// EventMatrixOrthogonality reports the ‖H·Hᵀ-I‖_∞ residual measured
	// after a feedback matrix regeneration (spec.md §4.4.2 step 4).
	EventMatrixOrthogonality EventKind = iota
	// EventBufferFlush reports a room-size-triggered buffer flush.
	EventBufferFlush
	// EventNumericalGuard reports a NaN/Inf scrub in the feedback path.
	EventNumericalGuard
)

// Event is a fixed-size diagnostic record. Value and Line are generic
// payload slots whose meaning depends on Kind.
type Event struct {
	Kind  EventKind
	Value float64
	Line  int
}

// Queue is a lock-free SPSC ring buffer of Events. Capacity is rounded up
// to a power of two so index masking replaces modulo.
type Queue struct {
	data     []Event
	mask     uint64
	readPos  uint64
	writePos uint64
}

// NewQueue creates a queue with at least the given capacity.
func NewQueue(capacity int) *Queue {
	size := nextPowerOf2(uint64(capacity))
	return &Queue{
		data: make([]Event, size),
		mask: size - 1,
	}
}

// TryPush attempts to enqueue an event without blocking. Returns false if
// the queue is full — the caller (the audio thread) drops the event rather
// than wait, since a diagnostic is never allowed to stall real-time
// processing.
func (q *Queue) TryPush(e Event) bool {
	writePos := atomic.LoadUint64(&q.writePos)
	readPos := atomic.LoadUint64(&q.readPos)

	if writePos-readPos >= uint64(len(q.data)) {
		return false
	}

	q.data[writePos&q.mask] = e
	atomic.StoreUint64(&q.writePos, writePos+1)
	return true
}

// TryPop attempts to dequeue an event. Returns false if the queue is
// empty. Called only from the single consumer goroutine.
func (q *Queue) TryPop() (Event, bool) {
	readPos := atomic.LoadUint64(&q.readPos)
	writePos := atomic.LoadUint64(&q.writePos)

	if readPos >= writePos {
		return Event{}, false
	}

	e := q.data[readPos&q.mask]
	atomic.StoreUint64(&q.readPos, readPos+1)
	return e, true
}

func nextPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
