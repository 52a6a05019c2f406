//go:build !darwin

package frontapp

import "errors"

var errUnsupported = errors.New("frontmost application tracking not supported on this platform")

// Frontmost is unavailable outside macOS; insertion falls back to the
// window that has focus at paste time.
func Frontmost() (App, error) {
	return App{}, errUnsupported
}

// Activate is a no-op outside macOS.
func Activate(pid int) error {
	return nil
}
