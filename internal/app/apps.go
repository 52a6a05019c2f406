package app

import "github.com/jxucoder/openmumble/frontapp"

// SystemApps adapts the frontapp package to the AppTracker interface.
type SystemApps struct{}

func (SystemApps) Frontmost() (frontapp.App, error) { return frontapp.Frontmost() }

func (SystemApps) Activate(pid int) error { return frontapp.Activate(pid) }
