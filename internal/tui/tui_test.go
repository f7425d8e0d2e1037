package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tturner/autoclick/internal/app"
	"github.com/tturner/autoclick/internal/hotkey"
	"github.com/tturner/autoclick/internal/input"
	"github.com/tturner/autoclick/internal/prefs"
	"github.com/tturner/autoclick/internal/profile"
)

type stubInjector struct{}

func (stubInjector) Location() (input.Point, bool) { return input.Point{X: 12.9, Y: 34.1}, true }
func (stubInjector) Click(input.Point) error        { return nil }

func newTestModel(t *testing.T) (*Model, *app.Controller) {
	t.Helper()
	ctrl := app.NewController(profile.NewStore(prefs.NewMemoryStore()), stubInjector{}, nil)
	t.Cleanup(ctrl.Close)
	ctrl.Load()
	m := NewModel(Options{
		Controller:   ctrl,
		Dispatcher:   hotkey.NewDispatcher(time.Hour, ctrl.HandleHotkey),
		LocalHotkey:  "ctrl+t",
		GlobalHotkey: "cmd+shift+s",
	})
	return m, ctrl
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)
	if m.focus != fieldProfile {
		t.Errorf("initial focus = %d, want fieldProfile", m.focus)
	}
	if m.name.Value() != "Default" || m.interval.Value() != "30" {
		t.Errorf("inputs = %q/%q, want Default/30", m.name.Value(), m.interval.Value())
	}
	if m.Init() == nil {
		t.Error("Init should schedule the refresh tick")
	}
}

func TestProfileSelection(t *testing.T) {
	m, ctrl := newTestModel(t)

	m.Update(runes("3"))
	if ctrl.Snapshot().Selected != 2 {
		t.Errorf("Selected = %d, want 2", ctrl.Snapshot().Selected)
	}
	if m.name.Value() != "Profile 2" || m.interval.Value() != "" {
		t.Errorf("inputs = %q/%q after selecting slot 3", m.name.Value(), m.interval.Value())
	}

	m.Update(key(tea.KeyRight))
	m.Update(key(tea.KeyRight))
	if ctrl.Snapshot().Selected != 0 {
		t.Errorf("Selected = %d, want wrap to 0", ctrl.Snapshot().Selected)
	}
	m.Update(key(tea.KeyLeft))
	if ctrl.Snapshot().Selected != 3 {
		t.Errorf("Selected = %d, want wrap to 3", ctrl.Snapshot().Selected)
	}
}

func TestEditAndSaveViaKeys(t *testing.T) {
	m, ctrl := newTestModel(t)

	m.Update(key(tea.KeyTab))
	if m.focus != fieldName {
		t.Fatalf("focus = %d, want fieldName", m.focus)
	}
	m.Update(runes("X"))
	m.Update(key(tea.KeyTab))
	m.Update(key(tea.KeyBackspace))
	m.Update(key(tea.KeyBackspace))
	m.Update(runes("5"))
	m.Update(key(tea.KeyCtrlS))

	st := ctrl.Snapshot()
	if st.Current() != (profile.Profile{Name: "DefaultX", Interval: "5"}) {
		t.Errorf("profile = %+v", st.Current())
	}
	if st.Status != "Saved DefaultX: 5s" {
		t.Errorf("Status = %q", st.Status)
	}
}

func TestEnterTogglesAndLocksFields(t *testing.T) {
	m, ctrl := newTestModel(t)

	m.Update(key(tea.KeyTab))
	m.Update(key(tea.KeyEnter))
	if !ctrl.Snapshot().Running {
		t.Fatal("enter should start clicking")
	}
	if m.focus != fieldProfile {
		t.Error("focus should leave text fields while running")
	}

	m.Update(key(tea.KeyTab))
	if m.focus != fieldProfile {
		t.Errorf("tab while running should skip read-only fields, focus = %d", m.focus)
	}

	if !strings.Contains(m.View(), "Stop") {
		t.Error("view should offer Stop while running")
	}

	m.Update(key(tea.KeyEnter))
	if ctrl.Snapshot().Running {
		t.Fatal("second enter should stop clicking")
	}
	if !strings.Contains(m.View(), "Stopped.") {
		t.Error("view should show Stopped. status")
	}
}

func TestLocalHotkeyGoesThroughDispatcher(t *testing.T) {
	m, ctrl := newTestModel(t)

	m.Update(key(tea.KeyCtrlT))
	if !ctrl.Snapshot().Running {
		t.Fatal("local hotkey should start clicking")
	}
	// Same press delivered again inside the debounce window.
	m.Update(key(tea.KeyCtrlT))
	if !ctrl.Snapshot().Running {
		t.Error("duplicate hotkey within debounce window should be ignored")
	}
	fired, suppressed := m.dispatcher.Stats()
	if fired != 1 || suppressed != 1 {
		t.Errorf("dispatcher stats = %d/%d, want 1/1", fired, suppressed)
	}
}

func TestInvalidIntervalShownAsError(t *testing.T) {
	m, ctrl := newTestModel(t)
	m.Update(runes("2"))
	m.Update(key(tea.KeyEnter))

	if ctrl.Snapshot().Running {
		t.Fatal("empty interval must not start clicking")
	}
	if !strings.Contains(m.View(), "Invalid interval for Profile 1") {
		t.Errorf("view missing invalid interval status:\n%s", m.View())
	}
}

func TestCopyLastClick(t *testing.T) {
	m, ctrl := newTestModel(t)
	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	m.Update(key(tea.KeyCtrlY))
	if m.notice != "Nothing to copy yet" {
		t.Errorf("notice = %q", m.notice)
	}

	ctrl.SetInterval("0.01")
	if err := ctrl.Start(); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for ctrl.Snapshot().ClickCount == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	ctrl.Stop()

	m.Update(tickMsg(time.Now()))
	m.Update(key(tea.KeyCtrlY))
	if copied != "12,34" {
		t.Errorf("copied %q, want 12,34", copied)
	}

	m.copy = func(string) error { return errors.New("no clipboard utility") }
	m.Update(key(tea.KeyCtrlY))
	if !strings.HasPrefix(m.notice, "Copy failed") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestQuitStopsClicking(t *testing.T) {
	m, ctrl := newTestModel(t)
	m.Update(key(tea.KeyEnter))

	_, cmd := m.Update(key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if ctrl.Snapshot().Running {
		t.Error("quitting should stop clicking")
	}
}

func TestViewShowsCounterAndFooter(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Clicks: 0", "Default", "Profile 3", "cmd+shift+s", "ctrl+t", "Loaded saved profiles"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
