package gesture

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotepad/internal/input"
	"remotepad/internal/protocol"
)

type recordingActuator struct {
	moves   [][2]int
	clicks  []input.Button
	keys    []rune
	scrolls []int
	err     error
}

func (a *recordingActuator) MoveRelative(dx, dy int) error {
	a.moves = append(a.moves, [2]int{dx, dy})
	return a.err
}

func (a *recordingActuator) Click(button input.Button) error {
	a.clicks = append(a.clicks, button)
	return a.err
}

func (a *recordingActuator) KeyTap(ch rune) error {
	a.keys = append(a.keys, ch)
	return a.err
}

func (a *recordingActuator) Scroll(lines int) error {
	a.scrolls = append(a.scrolls, lines)
	return a.err
}

type manualClock struct {
	ms int64
}

func (c *manualClock) NowMillis() int64 { return c.ms }

func newTestInterpreter(act input.Actuator, clk Clock) (*Interpreter, *SharedClock) {
	shared := &SharedClock{}
	return NewInterpreter(act, clk, shared, DefaultTuning), shared
}

// neutralMove builds a one-finger move in the pass-through speed band, away
// from the viewport edges.
func neutralMove(dx, dy float64) protocol.MoveEvent {
	return protocol.MoveEvent{
		DX: dx, DY: dy,
		SX: 0.2, SY: 0,
		Touches: 1,
		Width:   1000, Height: 1000,
		X: 500, Y: 500,
	}
}

func TestNeutralBandPassesThrough(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(5, 0))

	require.Equal(t, [][2]int{{5, 0}}, act.moves)
	assert.Empty(t, act.scrolls)
}

func TestPrecisionScaling(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	ev := neutralMove(3, -2)
	ev.SX, ev.SY = 0.1, 0.1 // speed ~0.14, below the precision threshold

	interp.Handle(ev)

	require.Equal(t, [][2]int{{12, -8}}, act.moves)
}

func TestAccelerationCurve(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	ev := neutralMove(10, 0)
	ev.SX = 2.0 // well above the acceleration threshold

	interp.Handle(ev)

	tun := DefaultTuning()
	factor := 1 + tun.AccelMultiplier*math.Pow(2.0-tun.AccelSpeedThreshold, tun.AccelPower)
	want := int(math.Round(10 * factor))

	require.Equal(t, [][2]int{{want, 0}}, act.moves)
	assert.Greater(t, want, 10, "acceleration must amplify fast movement")
}

func TestScrollThrottling(t *testing.T) {
	act := &recordingActuator{}
	clk := &manualClock{ms: 100}
	interp, _ := newTestInterpreter(act, clk)

	scroll := protocol.MoveEvent{DY: 3, Touches: 2, Width: 1000, Height: 1000, X: 500, Y: 500}

	for _, ms := range []int64{100, 110, 120, 130} {
		clk.ms = ms
		interp.Handle(scroll)
	}

	// Only the events at 100 and 130 clear the 25ms interval.
	require.Len(t, act.scrolls, 2)

	// dy=3: speed 7.5, capped accel 0.45, round(7.5*1.45)=11, sign inverted.
	assert.Equal(t, []int{-11, -11}, act.scrolls)
	assert.Empty(t, act.moves)
}

func TestScrollAccelIsCapped(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(protocol.MoveEvent{DY: 50, Touches: 2, Width: 1000, Height: 1000, X: 500, Y: 500})

	// accel saturates at 2.0: round(50*2.5*3) = 375.
	require.Equal(t, []int{-375}, act.scrolls)
}

func TestTwoFingerEventNeverMoves(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	ev := neutralMove(800, 600)
	ev.Touches = 2

	interp.Handle(ev)

	assert.Empty(t, act.moves, "scroll and movement paths are mutually exclusive")
}

func TestScrollCancelsInertia(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(50, 0)) // prime the inertia carry
	require.Equal(t, 50.0, interp.prevDX)

	// Zero-dy scroll: throttling emits nothing, the reset still happens.
	interp.Handle(protocol.MoveEvent{DY: 0, Touches: 2, Width: 1000, Height: 1000, X: 500, Y: 500})
	assert.Zero(t, interp.prevDX)
	assert.Empty(t, act.scrolls)

	interp.Handle(neutralMove(5, 0))
	assert.Equal(t, [2]int{5, 0}, act.moves[len(act.moves)-1], "no inertia may carry across a scroll")
}

func TestOutlierRejection(t *testing.T) {
	act := &recordingActuator{}
	interp, shared := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(1500, 0))

	assert.Empty(t, act.moves)
	assert.Empty(t, act.scrolls)
	assert.Zero(t, interp.prevDX)
	assert.Zero(t, interp.prevDY)
	assert.Zero(t, shared.LastProcessedMillis(), "a discarded event is not an actuation")

	// The corrupted carry must not leak into the next frame.
	interp.Handle(neutralMove(5, 0))
	require.Equal(t, [][2]int{{5, 0}}, act.moves)
}

func TestZeroDeltaInertiaDecay(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(4, 0))
	require.Len(t, act.moves, 1)

	prev := interp.prevDX
	for n := 0; n < 6; n++ {
		interp.Handle(neutralMove(0, 0))
		assert.Less(t, interp.prevDX, prev, "carry must shrink monotonically")
		prev = interp.prevDX
	}

	assert.Len(t, act.moves, 1, "zero-delta events must never actuate")
	assert.Less(t, interp.prevDX, 0.01)
}

func TestClickResetsInertia(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(50, 0))
	interp.Handle(protocol.ClickEvent{Button: protocol.ButtonLeft})

	require.Equal(t, []input.Button{input.ButtonLeft}, act.clicks)
	assert.Zero(t, interp.prevDX)

	interp.Handle(neutralMove(5, 0))
	assert.Equal(t, [2]int{5, 0}, act.moves[len(act.moves)-1],
		"the move after a click must be non-inertial")
}

func TestRightClickMapping(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(protocol.ClickEvent{Button: protocol.ButtonRight})

	require.Equal(t, []input.Button{input.ButtonRight}, act.clicks)
}

func TestKeyPressKeepsInertia(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(50, 0))
	interp.Handle(protocol.KeyEvent{Key: 'a'})

	require.Equal(t, []rune{'a'}, act.keys)
	assert.Equal(t, 50.0, interp.prevDX, "typing does not touch the inertia state")

	interp.Handle(neutralMove(5, 0))
	// 5 + 50*0.08 = 9: the carry survives the key press.
	assert.Equal(t, [2]int{9, 0}, act.moves[len(act.moves)-1])
}

func TestEdgeDampingCurrentDelta(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	ev := neutralMove(10, 0)
	ev.X = 10 // inside the 40px edge zone

	interp.Handle(ev)

	require.Equal(t, [][2]int{{7, 0}}, act.moves)
}

func TestEdgeDampingStoredCarry(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	interp.Handle(neutralMove(50, 0))
	require.Equal(t, 50.0, interp.prevDX)

	ev := neutralMove(0, 0)
	ev.Y = 995 // bottom edge zone

	interp.Handle(ev)

	// Carry damped to 35 first, then applied: round(35*0.08) = 3.
	assert.Equal(t, [2]int{3, 0}, act.moves[len(act.moves)-1])
}

func TestActuatorFailureAdvancesState(t *testing.T) {
	act := &recordingActuator{err: errors.New("injection refused")}
	clk := &manualClock{ms: 321}
	interp, shared := newTestInterpreter(act, clk)

	interp.Handle(neutralMove(5, 0))

	assert.Equal(t, 5.0, interp.prevDX, "state advances as on success")
	assert.Equal(t, int64(321), shared.LastProcessedMillis())
}

func TestSharedClockUpdates(t *testing.T) {
	act := &recordingActuator{}
	clk := &manualClock{ms: 777}
	interp, shared := newTestInterpreter(act, clk)

	interp.Handle(protocol.KeyEvent{Key: 'x'})
	assert.Equal(t, int64(777), shared.LastProcessedMillis())

	clk.ms = 888
	interp.Handle(protocol.ClickEvent{Button: protocol.ButtonLeft})
	assert.Equal(t, int64(888), shared.LastProcessedMillis())
}

func TestRunDrainsUntilClosed(t *testing.T) {
	act := &recordingActuator{}
	interp, _ := newTestInterpreter(act, &manualClock{ms: 100})

	events := make(chan protocol.ClientEvent, 3)
	events <- neutralMove(5, 0)
	events <- protocol.ClickEvent{Button: protocol.ButtonLeft}
	events <- protocol.KeyEvent{Key: 'z'}
	close(events)

	interp.Run(events)

	assert.Equal(t, [][2]int{{5, 0}}, act.moves)
	assert.Equal(t, []input.Button{input.ButtonLeft}, act.clicks)
	assert.Equal(t, []rune{'z'}, act.keys)
}
