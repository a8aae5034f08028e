//go:build !darwin && !windows

package input

import (
	"fmt"
)

// Stub implementation for platforms without native injection support.

// Enabled reports whether native injection is available.
func Enabled() bool {
	return false
}

// Injector is a stub actuator.
type Injector struct{}

// NewInjector creates a new stub injector.
func NewInjector() *Injector {
	return &Injector{}
}

// MoveRelative injects a relative mouse movement (stub).
func (i *Injector) MoveRelative(dx, dy int) error {
	return fmt.Errorf("input injection not supported on this platform")
}

// Click injects a mouse click (stub).
func (i *Injector) Click(button Button) error {
	return fmt.Errorf("input injection not supported on this platform")
}

// KeyTap injects a typed character (stub).
func (i *Injector) KeyTap(ch rune) error {
	return fmt.Errorf("input injection not supported on this platform")
}

// Scroll injects a wheel movement (stub).
func (i *Injector) Scroll(lines int) error {
	return fmt.Errorf("input injection not supported on this platform")
}
