// Package app holds the application state and the controller that mutates it.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/tturner/autoclick/internal/clicker"
	"github.com/tturner/autoclick/internal/hotkey"
	"github.com/tturner/autoclick/internal/input"
	"github.com/tturner/autoclick/internal/logging"
	"github.com/tturner/autoclick/internal/profile"
)

// AppState is a rendered-ready copy of everything the UI shows.
type AppState struct {
	Profiles   [profile.Count]profile.Profile
	Selected   int
	Running    bool
	ClickCount int
	Interval   time.Duration
	Status     string
	LastClick  *input.Point
}

// Current returns the selected profile.
func (s AppState) Current() profile.Profile {
	return s.Profiles[s.Selected]
}

// Controller is the only writer of application state. The UI reads it through
// Snapshot and sends intents through the other methods.
type Controller struct {
	store     *profile.Store
	scheduler *clicker.Scheduler
	logger    *logging.Logger

	mu       sync.Mutex
	selected int
	status   string
}

// NewController wires a profile store and an input backend together.
func NewController(store *profile.Store, injector input.Injector, logger *logging.Logger) *Controller {
	c := &Controller{store: store, logger: logger}
	c.scheduler = clicker.New(injector, c.setStatus, logger)
	return c
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

func (c *Controller) current() (int, profile.Profile) {
	c.mu.Lock()
	idx := c.selected
	c.mu.Unlock()
	p, _ := c.store.Get(idx)
	return idx, p
}

// Load reads saved profiles.
func (c *Controller) Load() {
	c.store.Load()
	c.setStatus("Loaded saved profiles")
	c.logger.Verbose("loaded %d profiles", profile.Count)
}

// Select changes the selected profile. Selection stays available while
// clicking; the running schedule keeps its interval.
func (c *Controller) Select(index int) error {
	if index < 0 || index >= profile.Count {
		return fmt.Errorf("%w: %d", profile.ErrIndexOutOfRange, index)
	}
	c.mu.Lock()
	c.selected = index
	c.mu.Unlock()
	return nil
}

// SetName edits the selected profile's name in memory. Ignored while running.
func (c *Controller) SetName(name string) bool {
	if c.scheduler.Running() {
		return false
	}
	idx, p := c.current()
	p.Name = name
	return c.store.Set(idx, p) == nil
}

// SetInterval edits the selected profile's interval text in memory. Ignored
// while running.
func (c *Controller) SetInterval(interval string) bool {
	if c.scheduler.Running() {
		return false
	}
	idx, p := c.current()
	p.Interval = interval
	return c.store.Set(idx, p) == nil
}

// Save persists the selected profile. Failures become status text. Ignored
// while running.
func (c *Controller) Save() error {
	if c.scheduler.Running() {
		return nil
	}
	idx, p := c.current()
	if err := c.store.Save(idx); err != nil {
		c.setStatus(fmt.Sprintf("Save failed: %v", err))
		c.logger.Error("save profile %d: %v", idx, err)
		return err
	}
	c.setStatus(fmt.Sprintf("Saved %s: %ss", p.Name, p.Interval))
	c.logger.Verbose("saved profile %d (%s)", idx, p.Name)
	return nil
}

// Start begins clicking with the selected profile.
func (c *Controller) Start() error {
	_, p := c.current()
	return c.scheduler.Start(p.Interval, p.Name)
}

// Stop ends clicking. It returns once no further click can happen.
func (c *Controller) Stop() {
	c.scheduler.Stop()
}

// Toggle stops when running, otherwise starts with the selected profile.
func (c *Controller) Toggle() error {
	_, p := c.current()
	return c.scheduler.Toggle(p.Interval, p.Name)
}

// HandleHotkey is the hotkey.Dispatcher handler.
func (c *Controller) HandleHotkey(src hotkey.Source) {
	c.logger.Debug("toggle via %s hotkey", src)
	_ = c.Toggle()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() AppState {
	st := c.scheduler.State()
	c.mu.Lock()
	selected, status := c.selected, c.status
	c.mu.Unlock()
	return AppState{
		Profiles:   c.store.All(),
		Selected:   selected,
		Running:    st.Running,
		ClickCount: st.Clicks,
		Interval:   st.Interval,
		Status:     status,
		LastClick:  st.LastClick,
	}
}

// Close stops clicking.
func (c *Controller) Close() {
	c.scheduler.Stop()
}
