// Package input provides the OS-level actuation boundary for the gesture
// pipeline. The platform injectors are thread-confined: they are only ever
// called from the interpreter goroutine, never concurrently.
package input

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft   Button = 1
	ButtonRight  Button = 2
	ButtonMiddle Button = 3
)

// Actuator is the opaque capability that performs pointer and keyboard
// injection. Calls are assumed synchronous and fast; implementations are not
// safe for concurrent use.
type Actuator interface {
	// MoveRelative moves the cursor by integer pixel deltas.
	MoveRelative(dx, dy int) error

	// Click presses and releases a button at the current cursor position.
	Click(button Button) error

	// KeyTap types a single Unicode character.
	KeyTap(ch rune) error

	// Scroll turns the wheel by the given number of lines; positive is up.
	Scroll(lines int) error
}
