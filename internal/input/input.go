// Package input posts synthetic mouse events at the current pointer location.
package input

import "errors"

// ErrUnavailable is returned by backends that cannot post input in this build.
var ErrUnavailable = errors.New("input backend unavailable")

// Point is a screen coordinate as reported by the OS.
type Point struct {
	X float64
	Y float64
}

// Ints returns the coordinates truncated toward zero.
func (p Point) Ints() (int, int) {
	return int(p.X), int(p.Y)
}

// Injector queries the pointer and posts left clicks.
type Injector interface {
	// Location reports the current pointer location. ok is false when the OS
	// cannot report one, e.g. without an active display.
	Location() (pt Point, ok bool)
	// Click posts a left-button press immediately followed by a release at pt.
	Click(pt Point) error
}
