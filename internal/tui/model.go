package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tturner/autoclick/internal/app"
	"github.com/tturner/autoclick/internal/hotkey"
	"github.com/tturner/autoclick/internal/profile"
)

// field is the focused form element.
type field int

const (
	fieldProfile field = iota
	fieldName
	fieldInterval
	fieldCount
)

// Model is the clicker screen. It renders controller snapshots and forwards
// intents; it never changes application state itself.
type Model struct {
	ctrl         *app.Controller
	dispatcher   *hotkey.Dispatcher
	localHotkey  string
	globalHotkey string
	styles       Styles

	state    app.AppState
	focus    field
	name     textinput.Model
	interval textinput.Model
	notice   string
	copy     func(string) error
}

// Options configures a Model.
type Options struct {
	Controller   *app.Controller
	Dispatcher   *hotkey.Dispatcher
	LocalHotkey  string
	GlobalHotkey string
}

// NewModel creates the clicker screen.
func NewModel(opts Options) *Model {
	name := textinput.New()
	name.Placeholder = "Profile Name"
	name.CharLimit = 40
	name.Width = 24

	interval := textinput.New()
	interval.Placeholder = "Seconds"
	interval.CharLimit = 12
	interval.Width = 8

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = hotkey.NewDispatcher(hotkey.DefaultDebounce, opts.Controller.HandleHotkey)
	}

	m := &Model{
		ctrl:         opts.Controller,
		dispatcher:   dispatcher,
		localHotkey:  opts.LocalHotkey,
		globalHotkey: opts.GlobalHotkey,
		styles:       DefaultStyles,
		name:         name,
		interval:     interval,
		copy:         clipboard.WriteAll,
	}
	m.refresh()
	m.syncInputs()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// tickMsg is sent periodically so clicks from the scheduler show up.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case key == "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit

	case m.localHotkey != "" && key == m.localHotkey:
		m.dispatcher.Fire(hotkey.SourceLocal)
		m.afterAction()
		return m, nil

	case key == "enter":
		_ = m.ctrl.Toggle()
		m.afterAction()
		return m, nil

	case key == "ctrl+s":
		_ = m.ctrl.Save()
		m.afterAction()
		return m, nil

	case key == "ctrl+y":
		m.copyLastClick()
		return m, nil

	case key == "tab":
		return m, m.moveFocus(1)

	case key == "shift+tab":
		return m, m.moveFocus(-1)
	}

	if m.focus == fieldProfile {
		return m.handleProfileKey(key)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleProfileKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		m.ctrl.Close()
		return m, tea.Quit
	case "left", "up", "h", "k":
		m.selectProfile((m.state.Selected + profile.Count - 1) % profile.Count)
	case "right", "down", "l", "j":
		m.selectProfile((m.state.Selected + 1) % profile.Count)
	case "1", "2", "3", "4":
		m.selectProfile(int(key[0] - '1'))
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Running {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
		m.ctrl.SetName(m.name.Value())
	case fieldInterval:
		m.interval, cmd = m.interval.Update(msg)
		m.ctrl.SetInterval(m.interval.Value())
	}
	m.refresh()
	return m, cmd
}

func (m *Model) selectProfile(index int) {
	if err := m.ctrl.Select(index); err != nil {
		return
	}
	m.notice = ""
	m.refresh()
	m.syncInputs()
}

// moveFocus cycles focus. The text fields are skipped while running.
func (m *Model) moveFocus(step int) tea.Cmd {
	next := m.focus
	for i := 0; i < int(fieldCount); i++ {
		next = field((int(next) + step + int(fieldCount)) % int(fieldCount))
		if next == fieldProfile || !m.state.Running {
			break
		}
	}
	return m.setFocus(next)
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.interval.Blur()
	switch f {
	case fieldName:
		return m.name.Focus()
	case fieldInterval:
		return m.interval.Focus()
	}
	return nil
}

// afterAction refreshes state after a toggle or save and pulls focus off the
// text fields once they become read-only.
func (m *Model) afterAction() {
	m.notice = ""
	m.refresh()
	if m.state.Running && m.focus != fieldProfile {
		m.setFocus(fieldProfile)
	}
}

func (m *Model) copyLastClick() {
	if m.state.LastClick == nil {
		m.notice = "Nothing to copy yet"
		return
	}
	x, y := m.state.LastClick.Ints()
	text := fmt.Sprintf("%d,%d", x, y)
	if err := m.copy(text); err != nil {
		m.notice = "Copy failed: " + err.Error()
		return
	}
	m.notice = "Copied " + text
}

func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	if m.state.Running && m.focus != fieldProfile {
		m.setFocus(fieldProfile)
	}
}

// syncInputs loads the selected profile into the text fields.
func (m *Model) syncInputs() {
	current := m.state.Current()
	m.name.SetValue(current.Name)
	m.interval.SetValue(current.Interval)
}

// View implements tea.Model.
func (m *Model) View() string {
	s := m.styles
	var b strings.Builder

	state := "Idle"
	if m.state.Running {
		state = s.Running.Render("Running")
	}
	b.WriteString(s.Title.Render("autoclick") + " " + StatusIcon(m.state.Running, s) + " " + state + "\n\n")

	b.WriteString(m.row("Profile:", m.renderProfiles(), m.focus == fieldProfile))
	b.WriteString(m.row("Name:", m.renderInput(m.name), m.focus == fieldName))
	b.WriteString(m.row("Interval (s):", m.renderInput(m.interval), m.focus == fieldInterval))
	b.WriteString("\n")
	b.WriteString(m.renderButtons())
	b.WriteString("\n\n")

	status := m.state.Status
	if strings.HasPrefix(status, "Invalid") || strings.HasPrefix(status, "Save failed") {
		status = s.Error.Render(status)
	}
	b.WriteString(status + "\n")
	b.WriteString(s.Dim.Render(fmt.Sprintf("Clicks: %d", m.state.ClickCount)) + "\n")
	if m.notice != "" {
		b.WriteString(s.Success.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + s.Footer.Render(m.footer()))
	return b.String()
}

func (m *Model) row(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = m.styles.Selected.Render("> ")
	}
	return marker + m.styles.Label.Render(label) + value + "\n"
}

func (m *Model) renderProfiles() string {
	parts := make([]string, 0, profile.Count)
	for i, p := range m.state.Profiles {
		label := fmt.Sprintf("%d %s", i+1, p.Name)
		if i == m.state.Selected {
			label = m.styles.Selected.Render(label)
		}
		parts = append(parts, RadioIcon(i == m.state.Selected, m.styles)+" "+label)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderInput(in textinput.Model) string {
	if m.state.Running {
		return m.styles.Disabled.Render(in.Value())
	}
	return in.View()
}

func (m *Model) renderButtons() string {
	save := m.styles.Button.Render("Save")
	if m.state.Running {
		save = m.styles.Button.Foreground(DefaultTheme.TextMuted).Render("Save")
	}
	toggle := m.styles.Button.Render("Start")
	if m.state.Running {
		toggle = m.styles.ButtonHot.Render("Stop")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, save, " ", toggle)
}

func (m *Model) footer() string {
	k := m.styles.KeyBinding.Render
	hints := []string{
		k("tab") + " focus",
		k("enter") + " start/stop",
		k("ctrl+s") + " save",
	}
	if m.localHotkey != "" {
		hints = append(hints, k(m.localHotkey)+" toggle")
	}
	if m.globalHotkey != "" {
		hints = append(hints, k(m.globalHotkey)+" global")
	}
	hints = append(hints, k("ctrl+y")+" copy", k("ctrl+c")+" quit")
	return strings.Join(hints, "  ")
}
