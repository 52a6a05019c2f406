// Package frontapp reports and activates the frontmost application so
// text lands in the window that had focus when recording started.
package frontapp

// App identifies a running application.
type App struct {
	PID      int
	BundleID string
}
