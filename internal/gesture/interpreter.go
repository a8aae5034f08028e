// Package gesture turns raw touch deltas and speeds into OS-level cursor
// motion, scroll ticks, clicks and key presses. The interpreter is the single
// consumer of the event queue; it owns the kinematic state and the actuator
// handle, so no two actuation decisions ever run concurrently.
package gesture

import (
	"math"

	"github.com/kataras/golog"

	"remotepad/internal/input"
	"remotepad/internal/protocol"
)

// TuningSource yields the tuning in effect for the next event. Backed by the
// config manager so edits to the file take effect without a restart.
type TuningSource func() Tuning

// Interpreter processes one ClientEvent at a time, strictly serialized.
// prevDX/prevDY carry the previous frame's pre-rounding output delta (the
// inertia carry); lastScrollMs throttles scroll emission. Both are touched
// only by the Run goroutine.
type Interpreter struct {
	actuator input.Actuator
	clock    Clock
	shared   *SharedClock
	tuning   TuningSource
	log      *golog.Logger

	prevDX       float64
	prevDY       float64
	lastScrollMs int64
}

// neverScrolled predates any clock reading so the first scroll tick is never
// throttled, even moments after startup. Far enough from MinInt64 that the
// throttle subtraction cannot overflow.
const neverScrolled = int64(-1) << 60

// NewInterpreter wires the pipeline's consumer. The actuator is assumed to be
// owned by this interpreter from here on.
func NewInterpreter(actuator input.Actuator, clock Clock, shared *SharedClock, tuning TuningSource) *Interpreter {
	return &Interpreter{
		actuator:     actuator,
		clock:        clock,
		shared:       shared,
		tuning:       tuning,
		log:          golog.Child("[gesture]"),
		lastScrollMs: neverScrolled,
	}
}

// Run drains the event channel until it is closed. This is the processing
// domain's only goroutine.
func (i *Interpreter) Run(events <-chan protocol.ClientEvent) {
	for ev := range events {
		i.Handle(ev)
	}
	i.log.Info("event stream closed, interpreter exiting")
}

// Handle applies one event to the kinematic state and possibly actuates.
// Actuator calls are fire-and-forget: a failure is logged and the event
// dropped, but state advances exactly as on success so a flaky actuator
// cannot corrupt the inertia model.
func (i *Interpreter) Handle(ev protocol.ClientEvent) {
	switch ev := ev.(type) {
	case protocol.MoveEvent:
		i.handleMove(ev)
	case protocol.ClickEvent:
		i.handleClick(ev)
	case protocol.KeyEvent:
		i.handleKey(ev)
	}
}

func (i *Interpreter) handleMove(ev protocol.MoveEvent) {
	t := i.tuning()

	// Two fingers scroll, anything else moves. Never both for one event.
	if ev.Touches == 2 {
		i.handleScroll(ev, t)
		return
	}

	dx, dy := ev.DX, ev.DY
	speed := math.Hypot(ev.SX, ev.SY)

	switch {
	case speed < t.PrecisionSpeedThreshold:
		dx *= t.PrecisionFactor
		dy *= t.PrecisionFactor
		// Precision mode favors immediate response over carried motion.
		i.prevDX, i.prevDY = 0, 0
	case speed > t.AccelSpeedThreshold:
		excess := math.Max(speed-t.AccelSpeedThreshold, 0)
		factor := 1 + t.AccelMultiplier*math.Pow(excess, t.AccelPower)
		dx *= factor
		dy *= factor
	}

	if nearEdge(ev, t.EdgeZonePx) {
		dx *= t.EdgeDampingFactor
		dy *= t.EdgeDampingFactor
		// Damp the stored carry too, or inertia keeps pushing into the edge.
		i.prevDX *= t.EdgeDampingFactor
		i.prevDY *= t.EdgeDampingFactor
	}

	dx += i.prevDX * t.InertiaFactor
	dy += i.prevDY * t.InertiaFactor

	// Carry the pre-rounding values; rounding error must not accumulate in
	// the inertia model.
	i.prevDX, i.prevDY = dx, dy

	dxInt := int(math.Round(dx))
	dyInt := int(math.Round(dy))

	if abs(dxInt) >= t.OutlierLimit || abs(dyInt) >= t.OutlierLimit {
		i.log.Debugf("discarding abnormal move dx=%d dy=%d", dxInt, dyInt)
		i.prevDX, i.prevDY = 0, 0
		return
	}

	if dxInt == 0 && dyInt == 0 {
		// Keep sub-pixel remainders from lingering as inertia forever.
		i.prevDX *= 0.5
		i.prevDY *= 0.5
		return
	}

	if err := i.actuator.MoveRelative(dxInt, dyInt); err != nil {
		i.log.Warnf("move failed: %v", err)
	}
	i.shared.Store(i.clock.NowMillis())
}

func (i *Interpreter) handleScroll(ev protocol.MoveEvent, t Tuning) {
	scrollSpeed := ev.DY * t.ScrollBaseFactor
	scrollAccel := math.Min(math.Abs(ev.DY)*t.ScrollAccelFactor, 2.0)
	scrollValue := int(math.Round(scrollSpeed * (1 + scrollAccel)))

	now := i.clock.NowMillis()
	if scrollValue != 0 && now-i.lastScrollMs >= t.ScrollIntervalMs {
		// Sign inverted for natural-scroll convention.
		if err := i.actuator.Scroll(-scrollValue); err != nil {
			i.log.Warnf("scroll failed: %v", err)
		}
		i.lastScrollMs = now
		i.shared.Store(now)
	}

	// Scrolling cancels movement inertia whether or not a tick was emitted.
	i.prevDX, i.prevDY = 0, 0
}

func (i *Interpreter) handleClick(ev protocol.ClickEvent) {
	// A tap cancels any carried motion.
	i.prevDX, i.prevDY = 0, 0

	button := input.ButtonLeft
	if ev.Button == protocol.ButtonRight {
		button = input.ButtonRight
	}
	if err := i.actuator.Click(button); err != nil {
		i.log.Warnf("click failed: %v", err)
	}
	i.shared.Store(i.clock.NowMillis())
}

func (i *Interpreter) handleKey(ev protocol.KeyEvent) {
	// Typing does not touch the inertia state.
	if err := i.actuator.KeyTap(ev.Key); err != nil {
		i.log.Warnf("key press failed: %v", err)
	}
	i.shared.Store(i.clock.NowMillis())
}

func nearEdge(ev protocol.MoveEvent, zone float64) bool {
	return ev.X < zone || ev.X > ev.Width-zone ||
		ev.Y < zone || ev.Y > ev.Height-zone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
