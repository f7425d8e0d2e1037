// Package clicker runs the repeating click schedule.
//
// A Scheduler is either Idle or Running. Start arms a ticker whose first tick
// fires one full interval after Start; every tick posts at most one click at
// the current pointer location. Stop cancels the ticker and waits for the
// tick goroutine to exit, so no tick is delivered once Stop has returned.
package clicker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tturner/autoclick/internal/input"
	"github.com/tturner/autoclick/internal/logging"
)

var (
	// ErrInvalidInterval is returned when the interval text is not a positive
	// number of seconds.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrAlreadyRunning is returned by Start while a schedule is active.
	ErrAlreadyRunning = errors.New("scheduler already running")
)

// Reporter receives status text. It is called with the scheduler lock held
// and must not call back into the Scheduler.
type Reporter func(status string)

// State is a point-in-time view of the scheduler.
type State struct {
	Running   bool
	Clicks    int
	Interval  time.Duration
	LastClick *input.Point
}

// Scheduler owns one cancellable repeating click task.
type Scheduler struct {
	injector input.Injector
	report   Reporter
	logger   *logging.Logger

	mu        sync.Mutex
	running   bool
	clicks    int
	interval  time.Duration
	lastClick *input.Point
	gen       uint64
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates an idle scheduler. report may be nil.
func New(injector input.Injector, report Reporter, logger *logging.Logger) *Scheduler {
	if report == nil {
		report = func(string) {}
	}
	return &Scheduler{injector: injector, report: report, logger: logger}
}

// ParseInterval converts interval text in seconds to a duration.
func ParseInterval(text string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, text)
	}
	if secs > float64(math.MaxInt64)/float64(time.Second) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidInterval, text)
	}
	d := time.Duration(secs * float64(time.Second))
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q is too small", ErrInvalidInterval, text)
	}
	return d, nil
}

// FormatSeconds renders d in seconds without trailing zeros ("30", "0.5").
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// Start parses intervalText and begins clicking. On a bad interval the
// scheduler stays Idle and reports "Invalid interval for <name>".
func (s *Scheduler) Start(intervalText, profileName string) error {
	interval, err := ParseInterval(intervalText)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	if err != nil {
		s.report(fmt.Sprintf("Invalid interval for %s", profileName))
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.gen++
	s.running = true
	s.clicks = 0
	s.interval = interval
	s.lastClick = nil
	s.cancel = cancel
	s.done = done

	s.report(fmt.Sprintf("Clicking every %ss (%s)...", FormatSeconds(interval), profileName))
	s.logger.LogToggle(true, profileName, interval)

	go s.run(ctx, s.gen, interval, done)
	return nil
}

// Stop cancels the schedule and waits for the tick goroutine to finish.
// Stopping an idle scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.gen++
	s.interval = 0
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.report("Stopped.")
	s.logger.LogToggle(false, "", 0)
	s.mu.Unlock()

	cancel()
	<-done
}

// Toggle stops a running schedule or starts a new one.
func (s *Scheduler) Toggle(intervalText, profileName string) error {
	if s.Running() {
		s.Stop()
		return nil
	}
	return s.Start(intervalText, profileName)
}

// Running reports whether a schedule is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// State returns a snapshot of the scheduler.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{Running: s.running, Clicks: s.clicks, Interval: s.interval}
	if s.lastClick != nil {
		pt := *s.lastClick
		st.LastClick = &pt
	}
	return st
}

func (s *Scheduler) run(ctx context.Context, gen uint64, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(gen)
		}
	}
}

// tick performs one click for run gen. The lock is released around the
// injector calls so State and Stop do not wait on the OS. A click that
// completes after its run was stopped is not counted or reported.
func (s *Scheduler) tick(gen uint64) {
	if !s.current(gen) {
		return
	}

	pt, ok := s.injector.Location()
	if !ok {
		return
	}
	x, y := pt.Ints()
	err := s.injector.Click(pt)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.gen != gen {
		return
	}
	if err != nil {
		s.logger.LogClick(x, y, s.clicks, err)
		return
	}

	s.clicks++
	s.lastClick = &pt
	s.logger.LogClick(x, y, s.clicks, nil)
	s.report(fmt.Sprintf("Clicked at %d,%d", x, y))
}

func (s *Scheduler) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.gen == gen
}
