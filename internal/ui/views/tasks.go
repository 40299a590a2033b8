package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dreamchaser/dreamchaser/internal/models"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/ui/keys"
	"github.com/dreamchaser/dreamchaser/internal/ui/styles"
)

// BackToGoals signals a return to the goal list.
type BackToGoals struct{}

// OpenTimer asks the app to start a study session for a task.
type OpenTimer struct {
	GoalName string
	TaskName string
}

type tasksLoadedMsg struct {
	tasks []*models.Task
}

type timeLoggedMsg struct {
	err error
}

// TaskListView shows the tasks of one goal and logs time against them.
type TaskListView struct {
	svc     *service.Service
	session *service.Session
	goal    service.GoalSummary
	tasks   []*models.Task
	styles  *styles.Styles
	keys    keys.KeyMap

	cursor  int
	loaded  bool
	errText string

	// Inline log-time form
	logging    bool
	logHours   textinput.Model
	logMinutes textinput.Model
	logFocus   int // 0=hours, 1=minutes

	width  int
	height int
}

func NewTaskListView(svc *service.Service, session *service.Session, goal service.GoalSummary) *TaskListView {
	logHours := textinput.New()
	logHours.Placeholder = "h"
	logHours.CharLimit = 3

	logMinutes := textinput.New()
	logMinutes.Placeholder = "m"
	logMinutes.CharLimit = 2

	return &TaskListView{
		svc:        svc,
		session:    session,
		goal:       goal,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		logHours:   logHours,
		logMinutes: logMinutes,
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *TaskListView) loadTasks() tea.Msg {
	tasks, err := v.svc.ListTasks(v.session.Username, v.goal.Name)
	if err != nil {
		return errMsg{err: err}
	}
	return tasksLoadedMsg{tasks: tasks}
}

func (v *TaskListView) selectedTask() *models.Task {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return nil
	}
	return v.tasks[v.cursor]
}

func (v *TaskListView) submitLog() tea.Cmd {
	task := v.selectedTask()
	if task == nil {
		v.logging = false
		return nil
	}
	hours, _ := strconv.Atoi(strings.TrimSpace(v.logHours.Value()))
	minutes, _ := strconv.Atoi(strings.TrimSpace(v.logMinutes.Value()))
	if hours == 0 && minutes == 0 {
		v.errText = "Nothing to log."
		return nil
	}
	taskName := task.Name
	return func() tea.Msg {
		err := v.svc.LogTime(v.session, v.goal.Name, taskName, hours, minutes)
		return timeLoggedMsg{err: err}
	}
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		v.loaded = true
		if v.cursor >= len(v.tasks) {
			v.cursor = max(len(v.tasks)-1, 0)
		}
		return v, nil

	case errMsg:
		v.errText = msg.err.Error()
		return v, nil

	case timeLoggedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, models.ErrInvalidTask) {
				v.errText = "Logged time must not be negative."
			} else {
				v.errText = msg.err.Error()
			}
			return v, nil
		}
		v.logging = false
		v.errText = ""
		v.logHours.Reset()
		v.logMinutes.Reset()
		return v, v.loadTasks

	case tea.KeyMsg:
		if v.logging {
			return v.updateLogging(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToGoals{} }
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.tasks)-1 {
				v.cursor++
			}
			return v, nil
		case key.Matches(msg, v.keys.LogTime):
			if v.selectedTask() != nil {
				v.logging = true
				v.logFocus = 0
				v.logHours.Focus()
				v.logMinutes.Blur()
				return v, textinput.Blink
			}
			return v, nil
		case key.Matches(msg, v.keys.Timer):
			if task := v.selectedTask(); task != nil {
				goalName, taskName := v.goal.Name, task.Name
				return v, func() tea.Msg {
					return OpenTimer{GoalName: goalName, TaskName: taskName}
				}
			}
			return v, nil
		case key.Matches(msg, v.keys.Stats):
			goalName := v.goal.Name
			return v, func() tea.Msg {
				return OpenStats{GoalName: goalName}
			}
		}
	}

	return v, nil
}

func (v *TaskListView) updateLogging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.logging = false
		v.errText = ""
		return v, nil
	case key.Matches(msg, v.keys.Tab):
		v.logFocus = (v.logFocus + 1) % 2
		if v.logFocus == 0 {
			v.logHours.Focus()
			v.logMinutes.Blur()
		} else {
			v.logHours.Blur()
			v.logMinutes.Focus()
		}
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		return v, v.submitLog()
	}

	var cmd tea.Cmd
	if v.logFocus == 0 {
		v.logHours, cmd = v.logHours.Update(msg)
	} else {
		v.logMinutes, cmd = v.logMinutes.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(v.goal.Name),
		s.TitleMuted.Render(fmt.Sprintf("%s to %s", v.goal.StartDate, v.goal.DueDate)),
		"",
	)

	var rows []string
	for i, task := range v.tasks {
		marker := "[ ]"
		lineStyle := s.TaskOpen
		if task.Complete {
			marker = "[x]"
			lineStyle = s.TaskDone
		}
		line := fmt.Sprintf("%s %s  %s of %s",
			marker, task.Name, task.Logged, task.Estimate)
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Width(max(contentWidth-4, 20)).Render(line))
		} else {
			rows = append(rows, lineStyle.Padding(0, 2).Render(line))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, s.TitleMuted.Render("This goal has no tasks."))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)

	var footer string
	switch {
	case v.logging:
		form := lipgloss.JoinHorizontal(lipgloss.Top,
			s.TitleMuted.Render("Log time: "),
			v.logInputStyle(0).Width(5).Render(v.logHours.View()),
			v.logInputStyle(1).Width(5).Render(v.logMinutes.View()),
		)
		footer = form + "\n" + s.TitleMuted.Render("↵ log • Tab: switch • Esc: cancel")
	default:
		footer = s.Help.Render(
			fmt.Sprintf("%s log time • %s timer • %s stats • %s back • %s quit",
				s.HelpKey.Render("l"),
				s.HelpKey.Render("t"),
				s.HelpKey.Render("s"),
				s.HelpKey.Render("esc"),
				s.HelpKey.Render("q"),
			),
		)
	}
	if v.errText != "" {
		footer += "\n" + s.ErrorText.Render(v.errText)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, "", footer)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskListView) logInputStyle(idx int) lipgloss.Style {
	if v.logging && idx == v.logFocus {
		return v.styles.InputFocused
	}
	return v.styles.Input
}
