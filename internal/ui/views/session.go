package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/ui/keys"
	"github.com/dreamchaser/dreamchaser/internal/ui/styles"
)

// SessionDone is emitted when the study timer closes, whether or not
// anything was logged.
type SessionDone struct {
	Logged bool
}

type tickMsg time.Time

type sessionLoggedMsg struct {
	err error
}

// StudySessionView runs a stopwatch against one task and logs the elapsed
// time when the user stops.
type StudySessionView struct {
	svc      *service.Service
	session  *service.Session
	goalName string
	taskName string
	styles   *styles.Styles
	keys     keys.KeyMap

	elapsed time.Duration
	running bool
	errText string

	width  int
	height int
}

func NewStudySessionView(svc *service.Service, session *service.Session, goalName, taskName string) *StudySessionView {
	return &StudySessionView{
		svc:      svc,
		session:  session,
		goalName: goalName,
		taskName: taskName,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		running:  true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (v *StudySessionView) Init() tea.Cmd {
	return tick()
}

func (v *StudySessionView) logElapsed() tea.Cmd {
	// Partial minutes round up so a short session still counts.
	minutes := int((v.elapsed + time.Minute - 1) / time.Minute)
	if minutes == 0 {
		return func() tea.Msg { return SessionDone{Logged: false} }
	}
	hours := minutes / 60
	minutes %= 60
	return func() tea.Msg {
		err := v.svc.LogTime(v.session, v.goalName, v.taskName, hours, minutes)
		return sessionLoggedMsg{err: err}
	}
}

func (v *StudySessionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tickMsg:
		if v.running {
			v.elapsed += time.Second
		}
		return v, tick()

	case sessionLoggedMsg:
		if msg.err != nil {
			v.errText = msg.err.Error()
			v.running = false
			return v, nil
		}
		return v, func() tea.Msg { return SessionDone{Logged: true} }

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return v, tea.Quit
		case " ":
			v.running = !v.running
			return v, nil
		case "r":
			v.elapsed = 0
			return v, nil
		case "ctrl+s", "enter":
			v.running = false
			return v, v.logElapsed()
		case "esc":
			return v, func() tea.Msg { return SessionDone{Logged: false} }
		}
	}

	return v, nil
}

func (v *StudySessionView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	total := int(v.elapsed / time.Second)
	clock := fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)

	digits := s.TimerDigits
	state := "studying"
	if !v.running {
		digits = s.TimerPaused
		state = "paused"
	}

	rows := []string{
		s.Title.Render("Study Session"),
		s.TitleMuted.Render(fmt.Sprintf("%s / %s", v.goalName, v.taskName)),
		"",
		digits.Render(clock),
		s.TitleMuted.Render(state),
	}
	if v.errText != "" {
		rows = append(rows, "", s.ErrorText.Render(v.errText))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("Space: pause • r: reset • ↵ log and close • Esc: discard"))

	content := lipgloss.JoinVertical(lipgloss.Center, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
