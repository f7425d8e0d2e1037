//go:build cgo

package hotkey

import (
	"context"

	hook "github.com/robotn/gohook"
)

// GlobalListener observes key-down events system-wide, whether or not the
// terminal has focus.
type GlobalListener struct {
	combo      Combo
	dispatcher *Dispatcher
}

// NewGlobalListener creates a listener for combo.
func NewGlobalListener(combo Combo, dispatcher *Dispatcher) *GlobalListener {
	return &GlobalListener{combo: combo, dispatcher: dispatcher}
}

// Run registers the combo and blocks until ctx is cancelled.
func (l *GlobalListener) Run(ctx context.Context) error {
	hook.Register(hook.KeyDown, l.combo.Keys(), func(hook.Event) {
		l.dispatcher.Fire(SourceGlobal)
	})

	events := hook.Start()
	processed := hook.Process(events)

	select {
	case <-ctx.Done():
		hook.End()
		<-processed
		return nil
	case <-processed:
		return nil
	}
}
