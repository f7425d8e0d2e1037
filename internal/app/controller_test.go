package app

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tturner/autoclick/internal/clicker"
	"github.com/tturner/autoclick/internal/hotkey"
	"github.com/tturner/autoclick/internal/input"
	"github.com/tturner/autoclick/internal/prefs"
	"github.com/tturner/autoclick/internal/profile"
)

type fakeInjector struct {
	mu     sync.Mutex
	clicks int
}

func (f *fakeInjector) Location() (input.Point, bool) {
	return input.Point{X: 640.5, Y: 400.9}, true
}

func (f *fakeInjector) Click(input.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicks++
	return nil
}

func (f *fakeInjector) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clicks
}

type brokenPrefs struct {
	*prefs.MemoryStore
}

func (brokenPrefs) Set(string, string) error { return errors.New("read-only file system") }

func newTestController(t *testing.T) (*Controller, *fakeInjector) {
	t.Helper()
	inj := &fakeInjector{}
	c := NewController(profile.NewStore(prefs.NewMemoryStore()), inj, nil)
	t.Cleanup(c.Close)
	c.Load()
	return c, inj
}

func TestLoadReportsStatus(t *testing.T) {
	c, _ := newTestController(t)
	st := c.Snapshot()
	if st.Status != "Loaded saved profiles" {
		t.Errorf("Status = %q", st.Status)
	}
	if st.Current() != (profile.Profile{Name: "Default", Interval: "30"}) {
		t.Errorf("Current() = %+v", st.Current())
	}
	if st.Running || st.ClickCount != 0 {
		t.Errorf("fresh controller state = %+v", st)
	}
}

func TestEditAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	backing, err := prefs.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(profile.NewStore(backing), &fakeInjector{}, nil)
	defer c.Close()
	c.Load()

	if err := c.Select(2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !c.SetName("Farm") || !c.SetInterval("2.5") {
		t.Fatal("edits should be accepted while idle")
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if st := c.Snapshot(); st.Status != "Saved Farm: 2.5s" {
		t.Errorf("Status = %q", st.Status)
	}

	reopened, err := prefs.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fresh := NewController(profile.NewStore(reopened), &fakeInjector{}, nil)
	defer fresh.Close()
	fresh.Load()
	got := fresh.Snapshot().Profiles[2]
	if got != (profile.Profile{Name: "Farm", Interval: "2.5"}) {
		t.Errorf("reloaded slot 2 = %+v", got)
	}
}

func TestSaveFailureIsStatusOnly(t *testing.T) {
	c := NewController(profile.NewStore(brokenPrefs{prefs.NewMemoryStore()}), &fakeInjector{}, nil)
	defer c.Close()

	if err := c.Save(); err == nil {
		t.Fatal("expected error")
	}
	st := c.Snapshot()
	if !strings.HasPrefix(st.Status, "Save failed:") {
		t.Errorf("Status = %q", st.Status)
	}
	if !strings.Contains(st.Status, "read-only") {
		t.Errorf("Status should carry the reason, got %q", st.Status)
	}
}

func TestSelectBounds(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.Select(4); !errors.Is(err, profile.ErrIndexOutOfRange) {
		t.Errorf("Select(4) error = %v", err)
	}
	if err := c.Select(-1); !errors.Is(err, profile.ErrIndexOutOfRange) {
		t.Errorf("Select(-1) error = %v", err)
	}
	if c.Snapshot().Selected != 0 {
		t.Error("selection changed after rejected Select")
	}
}

func TestEditsIgnoredWhileRunning(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if c.SetName("Hacked") {
		t.Error("SetName should be refused while running")
	}
	if c.SetInterval("1") {
		t.Error("SetInterval should be refused while running")
	}
	status := c.Snapshot().Status
	if err := c.Save(); err != nil {
		t.Errorf("Save while running should be a silent no-op, got %v", err)
	}

	st := c.Snapshot()
	if st.Current() != (profile.Profile{Name: "Default", Interval: "30"}) {
		t.Errorf("profile changed while running: %+v", st.Current())
	}
	if st.Status != status {
		t.Errorf("Status changed from %q to %q", status, st.Status)
	}
}

func TestStartInvalidInterval(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.Select(1); err != nil {
		t.Fatal(err)
	}

	for _, text := range []string{"0", "-5", "abc", ""} {
		c.SetInterval(text)
		err := c.Start()
		if !errors.Is(err, clicker.ErrInvalidInterval) {
			t.Errorf("Start with %q error = %v", text, err)
		}
		st := c.Snapshot()
		if st.Running || st.ClickCount != 0 {
			t.Errorf("state after invalid %q = %+v", text, st)
		}
		if st.Status != "Invalid interval for Profile 1" {
			t.Errorf("Status = %q", st.Status)
		}
	}
}

func TestToggleTwiceFromIdle(t *testing.T) {
	c, inj := newTestController(t)
	c.SetInterval("0.05")

	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !c.Snapshot().Running {
		t.Fatal("first Toggle should start")
	}
	if err := c.Toggle(); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	st := c.Snapshot()
	if st.Running {
		t.Fatal("second Toggle should stop")
	}
	if st.Status != "Stopped." {
		t.Errorf("Status = %q", st.Status)
	}

	time.Sleep(150 * time.Millisecond)
	if inj.count() != 0 {
		t.Errorf("clicks = %d after start/stop pair", inj.count())
	}
}

func TestClicksReachSnapshot(t *testing.T) {
	c, _ := newTestController(t)
	c.SetInterval("0.02")
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := c.Snapshot().Status; got != "Clicking every 0.02s (Default)..." {
		t.Errorf("Status = %q", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.Snapshot().ClickCount == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	st := c.Snapshot()
	if st.ClickCount == 0 {
		t.Fatal("no click recorded")
	}
	if st.Status != "Clicked at 640,400" {
		t.Errorf("Status = %q", st.Status)
	}
	if st.Interval != 20*time.Millisecond {
		t.Errorf("Interval = %s", st.Interval)
	}
	c.Stop()
}

func TestHotkeyDoubleFireToggledOnce(t *testing.T) {
	c, _ := newTestController(t)
	d := hotkey.NewDispatcher(time.Second, c.HandleHotkey)

	// Both listeners see the same key press.
	d.Fire(hotkey.SourceGlobal)
	d.Fire(hotkey.SourceLocal)

	if !c.Snapshot().Running {
		t.Error("one physical press should leave the scheduler running")
	}
}
