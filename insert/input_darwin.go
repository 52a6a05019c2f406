//go:build darwin

package insert

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation

#include <ApplicationServices/ApplicationServices.h>

static int om_post_key(unsigned short code, unsigned long long flags, int down) {
	CGEventRef ev = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)code, down != 0);
	if (ev == NULL) {
		return -1;
	}
	CGEventSetFlags(ev, (CGEventFlags)flags);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
	return 0;
}

static int om_post_unicode(const unsigned short* units, int count, int down) {
	CGEventRef ev = CGEventCreateKeyboardEvent(NULL, 0, down != 0);
	if (ev == NULL) {
		return -1;
	}
	CGEventKeyboardSetUnicodeString(ev, (UniCharCount)count, (const UniChar*)units);
	CGEventPost(kCGHIDEventTap, ev);
	CFRelease(ev);
	return 0;
}

static int om_shift_held(void) {
	return CGEventSourceKeyState(kCGEventSourceStateCombinedSessionState, 0x38)
	    || CGEventSourceKeyState(kCGEventSourceStateCombinedSessionState, 0x3C);
}

static int om_secure_input(void) {
	CGEventSourceRef src = CGEventSourceCreate(kCGEventSourceStateCombinedSessionState);
	if (src == NULL) {
		return 1;
	}
	CFTimeInterval interval = CGEventSourceGetLocalEventsSuppressionInterval(src);
	CFRelease(src);
	return interval == 0 ? 1 : 0;
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

const (
	cgFlagShift   uint64 = 0x00020000
	cgFlagControl uint64 = 0x00040000
	cgFlagOption  uint64 = 0x00080000
	cgFlagCommand uint64 = 0x00100000
)

// cgInput posts events through the CoreGraphics event system. Requires
// the accessibility permission.
type cgInput struct{}

// NewSyntheticInput returns the macOS CGEvent-backed input adapter.
func NewSyntheticInput() SyntheticInput {
	return cgInput{}
}

func cgFlags(mods ModFlags) uint64 {
	var flags uint64
	if mods&ModShift != 0 {
		flags |= cgFlagShift
	}
	if mods&ModControl != 0 {
		flags |= cgFlagControl
	}
	if mods&ModOption != 0 {
		flags |= cgFlagOption
	}
	if mods&ModCommand != 0 {
		flags |= cgFlagCommand
	}
	return flags
}

func (cgInput) PostKey(keycode uint16, mods ModFlags, down bool) error {
	d := 0
	if down {
		d = 1
	}
	if C.om_post_key(C.ushort(keycode), C.ulonglong(cgFlags(mods)), C.int(d)) != 0 {
		return errors.New("create keyboard event failed")
	}
	return nil
}

func (cgInput) PostUnicode(units []uint16, down bool) error {
	if len(units) == 0 {
		return nil
	}
	d := 0
	if down {
		d = 1
	}
	rc := C.om_post_unicode(
		(*C.ushort)(unsafe.Pointer(&units[0])), C.int(len(units)), C.int(d))
	if rc != 0 {
		return errors.New("create unicode event failed")
	}
	return nil
}

func (in cgInput) PostPaste() error {
	if err := in.PostKey(vkAnsiV, ModCommand, true); err != nil {
		return err
	}
	return in.PostKey(vkAnsiV, ModCommand, false)
}

func (cgInput) ShiftHeld() bool {
	return C.om_shift_held() != 0
}

func (in cgInput) ReleaseShift() error {
	if err := in.PostKey(vkShiftLeft, 0, false); err != nil {
		return err
	}
	return in.PostKey(vkShiftRight, 0, false)
}

// SecureInputActive reports whether a secure-input session appears to be
// active: either a combined-session event source cannot be created, or
// its event suppression interval is zero.
func SecureInputActive() bool {
	return C.om_secure_input() != 0
}
