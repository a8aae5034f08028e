//go:build windows

package input

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows implementation of input injection using SendInput.

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventfMove       = 0x0001
	mouseEventfLeftDown   = 0x0002
	mouseEventfLeftUp     = 0x0004
	mouseEventfRightDown  = 0x0008
	mouseEventfRightUp    = 0x0010
	mouseEventfMiddleDown = 0x0020
	mouseEventfMiddleUp   = 0x0040
	mouseEventfWheel      = 0x0800

	keyEventfKeyUp   = 0x0002
	keyEventfUnicode = 0x0004

	// One wheel notch per scrolled line.
	wheelNotch = 120
)

type mouseInput struct {
	Dx        int32
	Dy        int32
	MouseData uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// winInput mirrors the INPUT struct; mouseInput is the largest union member.
type winInput struct {
	Type uint32
	_    uint32
	MI   mouseInput
}

// Enabled reports whether native injection is available.
func Enabled() bool {
	return true
}

// Injector is the Windows actuator.
type Injector struct{}

// NewInjector creates a new input injector for Windows.
func NewInjector() *Injector {
	return &Injector{}
}

// MoveRelative injects a relative mouse movement.
func (i *Injector) MoveRelative(dx, dy int) error {
	in := winInput{
		Type: inputMouse,
		MI:   mouseInput{Dx: int32(dx), Dy: int32(dy), Flags: mouseEventfMove},
	}
	return send(&in)
}

// Click injects a button press followed by a release.
func (i *Injector) Click(button Button) error {
	var down, up uint32
	switch button {
	case ButtonLeft:
		down, up = mouseEventfLeftDown, mouseEventfLeftUp
	case ButtonRight:
		down, up = mouseEventfRightDown, mouseEventfRightUp
	case ButtonMiddle:
		down, up = mouseEventfMiddleDown, mouseEventfMiddleUp
	default:
		return fmt.Errorf("invalid button number: %d", button)
	}

	for _, flags := range []uint32{down, up} {
		in := winInput{Type: inputMouse, MI: mouseInput{Flags: flags}}
		if err := send(&in); err != nil {
			return err
		}
	}
	return nil
}

// KeyTap types one character using KEYEVENTF_UNICODE, so no virtual-key
// mapping or layout awareness is needed. Characters outside the BMP are sent
// as a surrogate pair.
func (i *Injector) KeyTap(ch rune) error {
	for _, unit := range utf16.Encode([]rune{ch}) {
		for _, flags := range []uint32{keyEventfUnicode, keyEventfUnicode | keyEventfKeyUp} {
			in := winInput{Type: inputKeyboard}
			*(*keybdInput)(unsafe.Pointer(&in.MI)) = keybdInput{Scan: unit, Flags: flags}
			if err := send(&in); err != nil {
				return err
			}
		}
	}
	return nil
}

// Scroll injects a vertical wheel movement.
func (i *Injector) Scroll(lines int) error {
	in := winInput{
		Type: inputMouse,
		MI: mouseInput{
			MouseData: uint32(int32(lines * wheelNotch)),
			Flags:     mouseEventfWheel,
		},
	}
	return send(&in)
}

func send(in *winInput) error {
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(in)), unsafe.Sizeof(*in))
	if n == 0 {
		return fmt.Errorf("SendInput failed: %w", err)
	}
	return nil
}
