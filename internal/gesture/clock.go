package gesture

import (
	"sync/atomic"
	"time"
)

// Clock supplies monotonic milliseconds for the interpreter's throttling
// decisions. Injectable so tests can drive time by hand.
type Clock interface {
	NowMillis() int64
}

// systemClock counts milliseconds since process start, so readings are
// monotonic and the very first scroll is never throttled against a zero
// lastScrollTime.
type systemClock struct {
	start time.Time
}

// NewSystemClock returns the production clock.
func NewSystemClock() Clock {
	return systemClock{start: time.Now()}
}

func (c systemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// SharedClock publishes the timestamp of the last actuation. The interpreter
// is the only writer; diagnostic readers (the status endpoint) may load it
// from any goroutine. It plays no part in control decisions outside the
// interpreter.
type SharedClock struct {
	lastProcessed atomic.Int64
}

// Store records the time of an actuation.
func (s *SharedClock) Store(ms int64) {
	s.lastProcessed.Store(ms)
}

// LastProcessedMillis returns the time of the most recent actuation, zero if
// nothing has been actuated yet.
func (s *SharedClock) LastProcessedMillis() int64 {
	return s.lastProcessed.Load()
}
