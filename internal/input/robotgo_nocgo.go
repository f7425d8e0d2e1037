//go:build !cgo

package input

import "fmt"

// noCgoInjector is a stub used when built without CGO. robotgo needs CGO to
// reach the platform input APIs.
type noCgoInjector struct{}

// NewInjector returns a stub injector when built without CGO.
func NewInjector() Injector {
	return noCgoInjector{}
}

func (noCgoInjector) Location() (Point, bool) {
	return Point{}, false
}

func (noCgoInjector) Click(Point) error {
	return fmt.Errorf("%w: built without CGO", ErrUnavailable)
}
