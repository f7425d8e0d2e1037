package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the clicker screen.
type Theme struct {
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	TextMuted lipgloss.Color

	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Running lipgloss.Color
}

// DefaultTheme is a dark palette (Tokyo Night).
var DefaultTheme = Theme{
	Text:      lipgloss.Color("#c0caf5"),
	TextDim:   lipgloss.Color("#565f89"),
	TextMuted: lipgloss.Color("#414868"),

	Border:        lipgloss.Color("#414868"),
	BorderFocused: lipgloss.Color("#7aa2f7"),

	Accent:  lipgloss.Color("#7aa2f7"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Running: lipgloss.Color("#e0af68"),
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Running lipgloss.Style

	Box        lipgloss.Style
	BoxFocused lipgloss.Style
	Button     lipgloss.Style
	ButtonHot  lipgloss.Style

	KeyBinding lipgloss.Style
	Footer     lipgloss.Style
}

// NewStyles creates a new Styles instance from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(t.TextDim).
			Width(14),
		Dim:      lipgloss.NewStyle().Foreground(t.TextDim),
		Selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Disabled: lipgloss.NewStyle().Foreground(t.TextMuted),

		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		BoxFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(t.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),
		ButtonHot: lipgloss.NewStyle().
			Foreground(t.Running).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Running).
			Padding(0, 2),

		KeyBinding: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Footer:     lipgloss.NewStyle().Foreground(t.TextDim),
	}
}

// DefaultStyles returns styles using the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// StatusIcon returns a colored running indicator.
func StatusIcon(running bool, s Styles) string {
	if running {
		return s.Running.Render("●")
	}
	return s.Dim.Render("○")
}

// RadioIcon returns a styled radio button.
func RadioIcon(selected bool, s Styles) string {
	if selected {
		return s.Selected.Render("●")
	}
	return s.Dim.Render("○")
}
