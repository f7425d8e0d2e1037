//go:build cgo

package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// robotInjector posts events through robotgo.
type robotInjector struct{}

// NewInjector returns the robotgo backed injector.
func NewInjector() Injector {
	return robotInjector{}
}

func (robotInjector) Location() (Point, bool) {
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return Point{}, false
	}
	x, y := robotgo.Location()
	return Point{X: float64(x), Y: float64(y)}, true
}

func (robotInjector) Click(pt Point) error {
	x, y := pt.Ints()
	robotgo.Move(x, y)
	if err := robotgo.Toggle("left"); err != nil {
		return fmt.Errorf("left down at %d,%d: %w", x, y, err)
	}
	if err := robotgo.Toggle("left", "up"); err != nil {
		return fmt.Errorf("left up at %d,%d: %w", x, y, err)
	}
	return nil
}
