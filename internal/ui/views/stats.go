package views

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/stats"
	"github.com/dreamchaser/dreamchaser/internal/ui/keys"
	"github.com/dreamchaser/dreamchaser/internal/ui/styles"
)

// CloseStats asks the app to leave the statistics view.
type CloseStats struct{}

type statsLoadedMsg struct {
	stats *service.GoalStatistics
}

// StatsView shows the progress numbers for one goal, with a per-week bar
// chart of logged hours.
type StatsView struct {
	svc      *service.Service
	session  *service.Session
	goalName string
	styles   *styles.Styles
	keys     keys.KeyMap

	stats   *service.GoalStatistics
	errText string

	width  int
	height int
}

func NewStatsView(svc *service.Service, session *service.Session, goalName string) *StatsView {
	return &StatsView{
		svc:      svc,
		session:  session,
		goalName: goalName,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
	}
}

func (v *StatsView) Init() tea.Cmd {
	return v.loadStats
}

func (v *StatsView) loadStats() tea.Msg {
	gs, err := v.svc.GoalStatistics(v.session.Username, v.goalName)
	if err != nil {
		return errMsg{err: err}
	}
	return statsLoadedMsg{stats: gs}
}

func (v *StatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case statsLoadedMsg:
		v.stats = msg.stats
		return v, nil

	case errMsg:
		v.errText = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return v, tea.Quit
		case "esc", "enter":
			return v, func() tea.Msg { return CloseStats{} }
		}
	}

	return v, nil
}

func (v *StatsView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	if v.errText != "" {
		return s.ErrorText.Render(v.errText)
	}
	if v.stats == nil {
		return s.TitleMuted.Render("Loading...")
	}
	gs := v.stats

	label := func(text string) string { return s.StatLabel.Width(16).Render(text) }

	daysLeft := fmt.Sprintf("%d day(s)", gs.DaysLeft)
	daysStyle := s.StatValue
	if gs.DaysLeft < 0 {
		daysLeft = "past due"
		daysStyle = s.StatAlert
	}

	rows := []string{
		s.Title.Render(gs.GoalName),
		s.TitleMuted.Render(fmt.Sprintf("%s to %s", gs.StartDate, gs.DueDate)),
		"",
		label("Completion") + s.StatValue.Render(fmt.Sprintf("%.1f%%", gs.Completion)),
		label("Open tasks") + s.StatValue.Render(fmt.Sprintf("%d", gs.OpenTaskCount)),
		label("Estimated") + s.StatValue.Render(gs.Estimated.String()),
		label("Logged") + s.StatValue.Render(gs.Logged.String()),
		label("Days left") + daysStyle.Render(daysLeft),
	}

	if gs.WeeklyGoal == stats.PastDue {
		rows = append(rows,
			label("Weekly goal")+s.StatAlert.Render("past due"))
	} else {
		rows = append(rows,
			label("Weekly goal")+s.StatValue.Render(fmt.Sprintf("%.1f h/week", gs.WeeklyGoal)),
			label("Pace accuracy")+s.StatValue.Render(fmt.Sprintf("%.0f%%", gs.PaceAccuracy)),
		)
	}

	if chart := v.renderWeeklyChart(gs, contentWidth); chart != "" {
		rows = append(rows, "", s.TitleMuted.Render("Hours per week:"), chart)
	}

	rows = append(rows, "", s.TitleMuted.Render("Esc: back • q: quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *StatsView) renderWeeklyChart(gs *service.GoalStatistics, contentWidth int) string {
	if len(gs.WeeklyLogged) == 0 {
		return ""
	}

	weeks := make([]int, 0, len(gs.WeeklyLogged))
	maxHours := 1
	for w, h := range gs.WeeklyLogged {
		weeks = append(weeks, w)
		if h > maxHours {
			maxHours = h
		}
	}
	sort.Ints(weeks)

	barWidth := clamp(contentWidth-20, 10, 40)

	s := v.styles
	var lines []string
	for _, w := range weeks {
		hours := gs.WeeklyLogged[w]
		filled := hours * barWidth / maxHours
		bar := s.ChartBar.Render(strings.Repeat("█", filled)) +
			s.ChartAxis.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines,
			fmt.Sprintf("%s %s %s",
				s.ChartAxis.Render(fmt.Sprintf("wk %2d", w+1)),
				bar,
				s.StatValue.Render(fmt.Sprintf("%2d h", hours)),
			))
	}
	return strings.Join(lines, "\n")
}
