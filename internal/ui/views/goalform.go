package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dreamchaser/dreamchaser/internal/assistant"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/ui/keys"
	"github.com/dreamchaser/dreamchaser/internal/ui/styles"
)

// GoalCreated is emitted after the goal and its tasks are persisted.
type GoalCreated struct{}

// CancelGoalForm asks the app to return to the goal list.
type CancelGoalForm struct{}

type suggestionsMsg struct {
	drafts []assistant.TaskDraft
	err    error
}

type goalSavedMsg struct {
	err error
}

const (
	focusGoalName = iota
	focusDueDate
	focusStartDate
	focusTaskName
	focusTaskHours
	focusTaskMinutes
	focusSave
	goalFormFields
)

// GoalFormView collects a new goal, its dates, and its task breakdown.
type GoalFormView struct {
	svc     *service.Service
	session *service.Session
	styles  *styles.Styles
	keys    keys.KeyMap

	name        textinput.Model
	dueDate     textinput.Model
	startDate   textinput.Model
	taskName    textinput.Model
	taskHours   textinput.Model
	taskMinutes textinput.Model

	drafts   []assistant.TaskDraft
	focusIdx int
	errText  string

	width  int
	height int
}

func NewGoalFormView(svc *service.Service, session *service.Session) *GoalFormView {
	name := textinput.New()
	name.Placeholder = "Goal name"
	name.CharLimit = 100
	name.Focus()

	dueDate := textinput.New()
	dueDate.Placeholder = "Due date (2026-12-31)"
	dueDate.CharLimit = 10

	startDate := textinput.New()
	startDate.Placeholder = "Start date (2026-09-01)"
	startDate.CharLimit = 10

	taskName := textinput.New()
	taskName.Placeholder = "Task name"
	taskName.CharLimit = 100

	taskHours := textinput.New()
	taskHours.Placeholder = "h"
	taskHours.CharLimit = 3

	taskMinutes := textinput.New()
	taskMinutes.Placeholder = "m"
	taskMinutes.CharLimit = 2

	return &GoalFormView{
		svc:         svc,
		session:     session,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		name:        name,
		dueDate:     dueDate,
		startDate:   startDate,
		taskName:    taskName,
		taskHours:   taskHours,
		taskMinutes: taskMinutes,
	}
}

func (v *GoalFormView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *GoalFormView) addDraft() {
	name := strings.TrimSpace(v.taskName.Value())
	if name == "" {
		v.errText = "Task name must not be blank."
		return
	}
	hours, _ := strconv.Atoi(strings.TrimSpace(v.taskHours.Value()))
	minutes, _ := strconv.Atoi(strings.TrimSpace(v.taskMinutes.Value()))
	if hours == 0 && minutes == 0 {
		v.errText = "Estimate must be greater than zero."
		return
	}
	v.drafts = append(v.drafts, assistant.TaskDraft{Name: name, Hours: hours, Minutes: minutes})
	v.taskName.Reset()
	v.taskHours.Reset()
	v.taskMinutes.Reset()
	v.errText = ""
	v.focusIdx = focusTaskName
	v.updateFocus()
}

func (v *GoalFormView) suggest() tea.Cmd {
	goalName := strings.TrimSpace(v.name.Value())
	dueDate := strings.TrimSpace(v.dueDate.Value())
	return func() tea.Msg {
		drafts, err := v.svc.SuggestTasks(context.Background(), goalName, dueDate)
		return suggestionsMsg{drafts: drafts, err: err}
	}
}

func (v *GoalFormView) save() tea.Cmd {
	goalName := strings.TrimSpace(v.name.Value())
	dueDate := strings.TrimSpace(v.dueDate.Value())
	startDate := strings.TrimSpace(v.startDate.Value())
	drafts := v.drafts
	return func() tea.Msg {
		err := v.svc.CreateGoalWithTasks(v.session, goalName, dueDate, startDate, drafts)
		return goalSavedMsg{err: err}
	}
}

func (v *GoalFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case suggestionsMsg:
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		v.drafts = append(v.drafts, msg.drafts...)
		v.errText = ""
		return v, nil

	case goalSavedMsg:
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		return v, func() tea.Msg { return GoalCreated{} }

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return CancelGoalForm{} }
		case key.Matches(msg, v.keys.Suggest):
			return v, v.suggest()
		case key.Matches(msg, v.keys.Save):
			return v, v.save()
		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % goalFormFields
			v.updateFocus()
			return v, nil
		case msg.String() == "shift+tab":
			v.focusIdx = (v.focusIdx + goalFormFields - 1) % goalFormFields
			v.updateFocus()
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			switch v.focusIdx {
			case focusTaskName, focusTaskHours, focusTaskMinutes:
				v.addDraft()
				return v, nil
			case focusSave:
				return v, v.save()
			default:
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case focusGoalName:
		v.name, cmd = v.name.Update(msg)
	case focusDueDate:
		v.dueDate, cmd = v.dueDate.Update(msg)
	case focusStartDate:
		v.startDate, cmd = v.startDate.Update(msg)
	case focusTaskName:
		v.taskName, cmd = v.taskName.Update(msg)
	case focusTaskHours:
		v.taskHours, cmd = v.taskHours.Update(msg)
	case focusTaskMinutes:
		v.taskMinutes, cmd = v.taskMinutes.Update(msg)
	}
	return v, cmd
}

func (v *GoalFormView) updateFocus() {
	inputs := []*textinput.Model{
		&v.name, &v.dueDate, &v.startDate,
		&v.taskName, &v.taskHours, &v.taskMinutes,
	}
	for i, in := range inputs {
		if i == v.focusIdx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (v *GoalFormView) inputStyle(idx int) lipgloss.Style {
	if idx == v.focusIdx {
		return v.styles.InputFocused
	}
	return v.styles.Input
}

func (v *GoalFormView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 44)

	btnStyle := s.Button
	if v.focusIdx == focusSave {
		btnStyle = s.ButtonFocused
	}

	taskRow := lipgloss.JoinHorizontal(lipgloss.Top,
		v.inputStyle(focusTaskName).Width(inputWidth-16).Render(v.taskName.View()),
		v.inputStyle(focusTaskHours).Width(5).Render(v.taskHours.View()),
		v.inputStyle(focusTaskMinutes).Width(5).Render(v.taskMinutes.View()),
	)

	rows := []string{
		s.Title.Render("New Goal"),
		"",
		v.inputStyle(focusGoalName).Width(inputWidth).Render(v.name.View()),
		v.inputStyle(focusDueDate).Width(inputWidth).Render(v.dueDate.View()),
		v.inputStyle(focusStartDate).Width(inputWidth).Render(v.startDate.View()),
		"",
		s.TitleMuted.Render("Break it into tasks:"),
		taskRow,
	}

	if len(v.drafts) > 0 {
		var listed []string
		for _, d := range v.drafts {
			listed = append(listed,
				fmt.Sprintf("  • %s (%dh %dm)", d.Name, d.Hours, d.Minutes))
		}
		rows = append(rows, s.TaskOpen.Render(strings.Join(listed, "\n")))
	}

	rows = append(rows, "", btnStyle.Render(" Create Goal "))
	if v.errText != "" {
		rows = append(rows, "", s.ErrorText.Render(v.errText))
	}
	rows = append(rows, "",
		s.TitleMuted.Render("↵ add task • Ctrl+G: suggest tasks • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
