package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme for the terminal UI.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// Aurora is the default color theme.
var Aurora = Theme{
	Name: "Aurora",

	Background:    lipgloss.Color("#2e3440"),
	Foreground:    lipgloss.Color("#d8dee9"),
	ForegroundDim: lipgloss.Color("#616e88"),

	Primary:   lipgloss.Color("#88c0d0"),
	Secondary: lipgloss.Color("#b48ead"),

	Success: lipgloss.Color("#a3be8c"),
	Warning: lipgloss.Color("#ebcb8b"),
	Error:   lipgloss.Color("#bf616a"),

	Border:      lipgloss.Color("#4c566a"),
	BorderFocus: lipgloss.Color("#88c0d0"),
	Selection:   lipgloss.Color("#434c5e"),
}

// Current holds the active theme.
var Current = Aurora

// MaxWidth caps content width at a classic terminal width.
const MaxWidth = 80

// ContentWidth returns the content width to use for layout.
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView centers content horizontally when the terminal is wider than
// MaxWidth.
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds the pre-computed styles for the UI.
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Task rows
	TaskDone lipgloss.Style
	TaskOpen lipgloss.Style

	// Study timer
	TimerDigits lipgloss.Style
	TimerPaused lipgloss.Style

	// Statistics view
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	StatAlert lipgloss.Style
	ChartBar  lipgloss.Style
	ChartAxis lipgloss.Style

	ErrorText lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style

	Panel lipgloss.Style
}

// NewStyles builds styles from the current theme.
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Success),

		TaskOpen: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TimerDigits: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TimerPaused: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatValue: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		StatAlert: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ChartBar: lipgloss.NewStyle().
			Foreground(t.Secondary),

		ChartAxis: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ErrorText: lipgloss.NewStyle().
			Foreground(t.Error),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
	}
}
