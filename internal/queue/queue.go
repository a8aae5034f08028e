// Package queue provides the unbounded FIFO channel between network sessions
// and the gesture interpreter.
package queue

import (
	"sync"
	"sync/atomic"
)

// Unbounded is a multi-producer, single-consumer FIFO queue with no capacity
// limit. Producers never block on a slow consumer; events accumulate in an
// elastic buffer instead. Delivery order on Out() matches push order.
type Unbounded[T any] struct {
	in    chan T
	out   chan T
	done  chan struct{}
	once  sync.Once
	depth atomic.Int64
}

// NewUnbounded creates the queue and starts its pump goroutine.
func NewUnbounded[T any]() *Unbounded[T] {
	q := &Unbounded[T]{
		in:   make(chan T),
		out:  make(chan T),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

// Push enqueues one value. It reports false once the queue has been closed,
// which is the signal for a session to terminate.
func (q *Unbounded[T]) Push(v T) bool {
	select {
	case <-q.done:
		return false
	case q.in <- v:
		return true
	}
}

// Out returns the consumer side. The channel is closed after Close once every
// buffered value has been delivered.
func (q *Unbounded[T]) Out() <-chan T {
	return q.out
}

// Len reports the current number of buffered events, for diagnostics only.
func (q *Unbounded[T]) Len() int {
	return int(q.depth.Load())
}

// Close stops the queue. Buffered events are still delivered to the consumer
// before Out is closed. Safe to call more than once.
func (q *Unbounded[T]) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *Unbounded[T]) pump() {
	var buf []T
	for {
		var out chan T
		var next T
		if len(buf) > 0 {
			out = q.out
			next = buf[0]
		}
		q.depth.Store(int64(len(buf)))

		select {
		case <-q.done:
			// Drain what is left, then signal end-of-stream.
			for _, v := range buf {
				q.out <- v
			}
			q.depth.Store(0)
			close(q.out)
			return
		case v := <-q.in:
			buf = append(buf, v)
		case out <- next:
			buf = buf[1:]
		}
	}
}
