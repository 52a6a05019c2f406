//go:build darwin

package frontapp

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

static int om_frontmost_pid(void) {
	NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
	if (app == nil) {
		return -1;
	}
	return (int)[app processIdentifier];
}

static char *om_frontmost_bundle(void) {
	NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
	if (app == nil || app.bundleIdentifier == nil) {
		return NULL;
	}
	return strdup([app.bundleIdentifier UTF8String]);
}

static int om_activate(int pid) {
	NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:(pid_t)pid];
	if (app == nil) {
		return 0;
	}
	if ([app isActive]) {
		return 1;
	}
	return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 1 : 0;
}
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"
)

// Frontmost returns the application that currently owns keyboard focus.
func Frontmost() (App, error) {
	pid := int(C.om_frontmost_pid())
	if pid < 0 {
		return App{}, fmt.Errorf("no frontmost application")
	}
	app := App{PID: pid}
	if cs := C.om_frontmost_bundle(); cs != nil {
		app.BundleID = C.GoString(cs)
		C.free(unsafe.Pointer(cs))
	}
	return app, nil
}

// Activate brings pid to the foreground. Activating the current process
// or an already frontmost application is a no-op.
func Activate(pid int) error {
	if pid == os.Getpid() {
		return nil
	}
	if C.om_activate(C.int(pid)) == 0 {
		return fmt.Errorf("activate pid %d: not running", pid)
	}
	return nil
}
