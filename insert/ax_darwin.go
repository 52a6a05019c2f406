//go:build darwin

package insert

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation

#include <stdlib.h>
#include <ApplicationServices/ApplicationServices.h>

static AXUIElementRef om_focused(void) {
	AXUIElementRef sys = AXUIElementCreateSystemWide();
	CFTypeRef focused = NULL;
	AXError err = AXUIElementCopyAttributeValue(sys, kAXFocusedUIElementAttribute, &focused);
	CFRelease(sys);
	if (err != kAXErrorSuccess) {
		return NULL;
	}
	return (AXUIElementRef)focused;
}

static AXUIElementRef om_parent(AXUIElementRef el) {
	CFTypeRef parent = NULL;
	if (AXUIElementCopyAttributeValue(el, kAXParentAttribute, &parent) != kAXErrorSuccess) {
		return NULL;
	}
	return (AXUIElementRef)parent;
}

static char* om_copy_string(AXUIElementRef el, CFStringRef attr) {
	CFTypeRef value = NULL;
	if (AXUIElementCopyAttributeValue(el, attr, &value) != kAXErrorSuccess) {
		return NULL;
	}
	if (value == NULL || CFGetTypeID(value) != CFStringGetTypeID()) {
		if (value) CFRelease(value);
		return NULL;
	}
	CFStringRef str = (CFStringRef)value;
	CFIndex size = CFStringGetMaximumSizeForEncoding(CFStringGetLength(str), kCFStringEncodingUTF8) + 1;
	char* buf = malloc(size);
	if (!CFStringGetCString(str, buf, size, kCFStringEncodingUTF8)) {
		free(buf);
		CFRelease(value);
		return NULL;
	}
	CFRelease(value);
	return buf;
}

static int om_settable(AXUIElementRef el, CFStringRef attr) {
	Boolean settable = false;
	if (AXUIElementIsAttributeSettable(el, attr, &settable) != kAXErrorSuccess) {
		return 0;
	}
	return settable ? 1 : 0;
}

static int om_set_string(AXUIElementRef el, CFStringRef attr, const char* text) {
	CFStringRef str = CFStringCreateWithCString(NULL, text, kCFStringEncodingUTF8);
	if (str == NULL) {
		return -1;
	}
	AXError err = AXUIElementSetAttributeValue(el, attr, str);
	CFRelease(str);
	return err == kAXErrorSuccess ? 0 : (int)err;
}

static int om_selected_range(AXUIElementRef el, long* start, long* length) {
	CFTypeRef value = NULL;
	if (AXUIElementCopyAttributeValue(el, kAXSelectedTextRangeAttribute, &value) != kAXErrorSuccess) {
		return -1;
	}
	if (value == NULL || CFGetTypeID(value) != AXValueGetTypeID()) {
		if (value) CFRelease(value);
		return -1;
	}
	CFRange range;
	Boolean ok = AXValueGetValue((AXValueRef)value, kAXValueTypeCFRange, &range);
	CFRelease(value);
	if (!ok) {
		return -1;
	}
	*start = range.location;
	*length = range.length;
	return 0;
}

static int om_set_selected_range(AXUIElementRef el, long start, long length) {
	CFRange range = CFRangeMake(start, length);
	AXValueRef value = AXValueCreate(kAXValueTypeCFRange, &range);
	if (value == NULL) {
		return -1;
	}
	AXError err = AXUIElementSetAttributeValue(el, kAXSelectedTextRangeAttribute, value);
	CFRelease(value);
	return err == kAXErrorSuccess ? 0 : (int)err;
}

static CFStringRef om_attr_value(void)          { return kAXValueAttribute; }
static CFStringRef om_attr_selected_text(void)  { return kAXSelectedTextAttribute; }
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

var errNoFocusedElement = errors.New("no focused element")

// axProvider resolves the focused UI element through the accessibility
// API. Requires the accessibility permission.
type axProvider struct{}

// NewFocusProvider returns the macOS accessibility focus provider.
func NewFocusProvider() FocusProvider {
	return axProvider{}
}

func (axProvider) Focused() (FocusTarget, error) {
	ref := C.om_focused()
	if ref == nil {
		return nil, errNoFocusedElement
	}
	return newAXElement(ref), nil
}

// axElement wraps one AXUIElement reference.
type axElement struct {
	ref C.AXUIElementRef
}

func newAXElement(ref C.AXUIElementRef) *axElement {
	el := &axElement{ref: ref}
	runtime.SetFinalizer(el, func(e *axElement) {
		C.CFRelease(C.CFTypeRef(e.ref))
	})
	return el
}

func (e *axElement) Value() (string, error) {
	cstr := C.om_copy_string(e.ref, C.om_attr_value())
	if cstr == nil {
		return "", errors.New("value attribute unavailable")
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr), nil
}

func (e *axElement) ValueSettable() bool {
	return C.om_settable(e.ref, C.om_attr_value()) != 0
}

func (e *axElement) SetValue(text string) error {
	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	if rc := C.om_set_string(e.ref, C.om_attr_value(), ctext); rc != 0 {
		return fmt.Errorf("set value: AXError %d", int(rc))
	}
	return nil
}

func (e *axElement) SelectedRange() (int, int, error) {
	var start, length C.long
	if C.om_selected_range(e.ref, &start, &length) != 0 {
		return 0, 0, errors.New("selected range unavailable")
	}
	return int(start), int(length), nil
}

func (e *axElement) SetSelectedRange(start, length int) error {
	if rc := C.om_set_selected_range(e.ref, C.long(start), C.long(length)); rc != 0 {
		return fmt.Errorf("set selected range: AXError %d", int(rc))
	}
	return nil
}

func (e *axElement) SelectedTextSettable() bool {
	return C.om_settable(e.ref, C.om_attr_selected_text()) != 0
}

func (e *axElement) SetSelectedText(text string) error {
	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))
	if rc := C.om_set_string(e.ref, C.om_attr_selected_text(), ctext); rc != 0 {
		return fmt.Errorf("set selected text: AXError %d", int(rc))
	}
	return nil
}

func (e *axElement) Parent() FocusTarget {
	ref := C.om_parent(e.ref)
	if ref == nil {
		return nil
	}
	return newAXElement(ref)
}
