// Package hotkey parses key combos and funnels every toggle trigger through a
// single debounced dispatcher.
package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	// ErrInvalidCombo is returned for combos that cannot be parsed.
	ErrInvalidCombo = errors.New("invalid hotkey combo")
	// ErrUnavailable is returned when global hotkeys are not compiled in.
	ErrUnavailable = errors.New("global hotkey unavailable: built without CGO")
)

// DefaultDebounce is the window in which repeated fires collapse into one.
const DefaultDebounce = 250 * time.Millisecond

var modifierAliases = map[string]string{
	"cmd":     "cmd",
	"command": "cmd",
	"super":   "cmd",
	"meta":    "cmd",
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"shift":   "shift",
}

// Combo is one key plus a set of modifiers.
type Combo struct {
	Key       string
	Modifiers []string
}

// ParseCombo parses text such as "cmd+shift+s". Modifiers are normalised and
// sorted; the key is lower-cased.
func ParseCombo(text string) (Combo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(text)), "+")
	var c Combo
	seen := make(map[string]bool)
	for _, raw := range parts {
		part := strings.TrimSpace(raw)
		if part == "" {
			return Combo{}, fmt.Errorf("%w: %q has an empty part", ErrInvalidCombo, text)
		}
		if mod, ok := modifierAliases[part]; ok {
			if !seen[mod] {
				seen[mod] = true
				c.Modifiers = append(c.Modifiers, mod)
			}
			continue
		}
		if c.Key != "" {
			return Combo{}, fmt.Errorf("%w: %q has more than one key", ErrInvalidCombo, text)
		}
		c.Key = part
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("%w: %q has no key", ErrInvalidCombo, text)
	}
	sort.Strings(c.Modifiers)
	return c, nil
}

// String renders the combo in the form accepted by ParseCombo.
func (c Combo) String() string {
	parts := append(append([]string(nil), c.Modifiers...), c.Key)
	return strings.Join(parts, "+")
}

// Keys returns key then modifiers, the order gohook registrations expect.
func (c Combo) Keys() []string {
	return append([]string{c.Key}, c.Modifiers...)
}

// Source identifies where a trigger came from.
type Source int

const (
	SourceGlobal Source = iota
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceGlobal:
		return "global"
	case SourceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Dispatcher calls its handler once per physical trigger. A second Fire within
// the debounce window, from any source, is dropped. This keeps a key press
// that reaches both the global and the in-window listener from toggling twice.
type Dispatcher struct {
	mu         sync.Mutex
	window     time.Duration
	handler    func(Source)
	now        func() time.Time
	last       time.Time
	fired      int
	suppressed int
}

// NewDispatcher creates a dispatcher. A non-positive window disables
// debouncing.
func NewDispatcher(window time.Duration, handler func(Source)) *Dispatcher {
	return &Dispatcher{window: window, handler: handler, now: time.Now}
}

// Fire runs the handler unless a fire happened within the debounce window.
// It reports whether the handler ran.
func (d *Dispatcher) Fire(src Source) bool {
	d.mu.Lock()
	now := d.now()
	if d.window > 0 && !d.last.IsZero() && now.Sub(d.last) < d.window {
		d.suppressed++
		d.mu.Unlock()
		return false
	}
	d.last = now
	d.fired++
	handler := d.handler
	d.mu.Unlock()

	if handler != nil {
		handler(src)
	}
	return true
}

// Stats returns how many fires ran and how many were suppressed.
func (d *Dispatcher) Stats() (fired, suppressed int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fired, d.suppressed
}
