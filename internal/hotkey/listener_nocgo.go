//go:build !cgo

package hotkey

import "context"

// GlobalListener is a stub when built without CGO. gohook needs CGO.
type GlobalListener struct {
	combo      Combo
	dispatcher *Dispatcher
}

// NewGlobalListener creates a stub listener.
func NewGlobalListener(combo Combo, dispatcher *Dispatcher) *GlobalListener {
	return &GlobalListener{combo: combo, dispatcher: dispatcher}
}

// Run returns ErrUnavailable immediately.
func (l *GlobalListener) Run(ctx context.Context) error {
	return ErrUnavailable
}
