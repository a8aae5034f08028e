//go:build darwin

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

// Check if we have accessibility permissions
bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}

// Get current mouse position
static CGPoint currentMousePosition() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint cursor = CGEventGetLocation(event);
    CFRelease(event);
    return cursor;
}

// Move the cursor by a relative delta
static void injectMoveRelative(CGFloat dx, CGFloat dy) {
    CGPoint pos = currentMousePosition();
    CGPoint dest = CGPointMake(pos.x + dx, pos.y + dy);

    CGEventRef event = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, dest, kCGMouseButtonLeft);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

// Press and release a button at the current cursor position
static void injectClick(int button) {
    CGMouseButton cgButton;
    CGEventType downType, upType;

    switch (button) {
        case 1:
            cgButton = kCGMouseButtonLeft;
            downType = kCGEventLeftMouseDown;
            upType = kCGEventLeftMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonRight;
            downType = kCGEventRightMouseDown;
            upType = kCGEventRightMouseUp;
            break;
        case 3:
            cgButton = kCGMouseButtonCenter;
            downType = kCGEventOtherMouseDown;
            upType = kCGEventOtherMouseUp;
            break;
        default:
            return;
    }

    CGPoint pos = currentMousePosition();

    CGEventRef down = CGEventCreateMouseEvent(NULL, downType, pos, cgButton);
    CGEventPost(kCGSessionEventTap, down);
    CFRelease(down);

    CGEventRef up = CGEventCreateMouseEvent(NULL, upType, pos, cgButton);
    CGEventPost(kCGSessionEventTap, up);
    CFRelease(up);
}

// Turn the scroll wheel by whole lines
static void injectScroll(int lines) {
    CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 1, lines);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

// Type a character by attaching a Unicode payload to a virtual key event,
// so no keyboard-layout mapping is needed
static void injectUnicode(const UniChar *chars, int length) {
    CGEventRef down = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventKeyboardSetUnicodeString(down, length, chars);
    CGEventPost(kCGSessionEventTap, down);
    CFRelease(down);

    CGEventRef up = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(up, length, chars);
    CGEventPost(kCGSessionEventTap, up);
    CFRelease(up);
}
*/
import "C"
import (
	"fmt"
	"unicode/utf16"
	"unsafe"
)

// macOS implementation of input injection using CoreGraphics.

// Enabled reports whether native injection is available. Injection silently
// does nothing without accessibility permissions, so surface that here.
func Enabled() bool {
	return bool(C.hasAccessibilityPermissions())
}

// Injector is the macOS actuator.
type Injector struct{}

// NewInjector creates a new input injector for macOS.
func NewInjector() *Injector {
	return &Injector{}
}

// MoveRelative injects a relative mouse movement.
func (i *Injector) MoveRelative(dx, dy int) error {
	C.injectMoveRelative(C.CGFloat(dx), C.CGFloat(dy))
	return nil
}

// Click injects a button press followed by a release.
func (i *Injector) Click(button Button) error {
	if button < ButtonLeft || button > ButtonMiddle {
		return fmt.Errorf("invalid button number: %d", button)
	}
	C.injectClick(C.int(button))
	return nil
}

// KeyTap types one character via a Unicode keyboard event.
func (i *Injector) KeyTap(ch rune) error {
	units := utf16.Encode([]rune{ch})
	C.injectUnicode((*C.UniChar)(unsafe.Pointer(&units[0])), C.int(len(units)))
	return nil
}

// Scroll injects a vertical wheel movement.
func (i *Injector) Scroll(lines int) error {
	C.injectScroll(C.int(lines))
	return nil
}
