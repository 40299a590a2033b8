package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/ui/keys"
	"github.com/dreamchaser/dreamchaser/internal/ui/styles"
)

type goalItem struct {
	goal service.GoalSummary
}

func (i goalItem) Title() string { return i.goal.Name }

func (i goalItem) Description() string {
	if i.goal.DaysLeft < 0 {
		return fmt.Sprintf("due %s • past due", i.goal.DueDate)
	}
	return fmt.Sprintf("due %s • %d day(s) left", i.goal.DueDate, i.goal.DaysLeft)
}

func (i goalItem) FilterValue() string { return i.goal.Name }

type goalDelegate struct {
	styles *styles.Styles
	width  int
}

func (d goalDelegate) Height() int                               { return 2 }
func (d goalDelegate) Spacing() int                              { return 1 }
func (d goalDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d goalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	g, ok := item.(goalItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}
	if g.goal.DaysLeft < 0 && !selected {
		descStyle = descStyle.Foreground(styles.Current.Error)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(g.Title()), descStyle.Render(g.Description()))
}

// SelectedGoal is emitted when the user opens a goal.
type SelectedGoal struct {
	Goal service.GoalSummary
}

// OpenGoalForm asks the app to show the new-goal form.
type OpenGoalForm struct{}

// OpenStats asks the app to show statistics for a goal.
type OpenStats struct {
	GoalName string
}

type goalsLoadedMsg struct {
	goals []service.GoalSummary
}

type errMsg struct {
	err error
}

// GoalListView lists the signed-in user's goals.
type GoalListView struct {
	svc      *service.Service
	session  *service.Session
	list     list.Model
	delegate *goalDelegate
	styles   *styles.Styles
	keys     keys.KeyMap

	width   int
	height  int
	loaded  bool
	errText string
}

func NewGoalListView(svc *service.Service, session *service.Session) *GoalListView {
	s := styles.NewStyles()
	delegate := &goalDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Goals"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &GoalListView{
		svc:      svc,
		session:  session,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

func (v *GoalListView) Init() tea.Cmd {
	return v.loadGoals
}

func (v *GoalListView) loadGoals() tea.Msg {
	goals, err := v.svc.ListGoals(v.session.Username)
	if err != nil {
		return errMsg{err: err}
	}
	return goalsLoadedMsg{goals: goals}
}

func (v *GoalListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case goalsLoadedMsg:
		items := make([]list.Item, len(msg.goals))
		for i, g := range msg.goals {
			items[i] = goalItem{goal: g}
		}
		v.list.SetItems(items)
		v.loaded = true
		return v, nil

	case errMsg:
		v.errText = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		if v.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.New):
			return v, func() tea.Msg { return OpenGoalForm{} }
		case key.Matches(msg, v.keys.Stats):
			if item, ok := v.list.SelectedItem().(goalItem); ok {
				return v, func() tea.Msg {
					return OpenStats{GoalName: item.goal.Name}
				}
			}
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(goalItem); ok {
				return v, func() tea.Msg {
					return SelectedGoal{Goal: item.goal}
				}
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *GoalListView) View() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if v.errText != "" {
		return v.styles.ErrorText.Render(v.errText)
	}
	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *GoalListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Goals Yet"),
		"",
		s.TitleMuted.Render("Press 'n' to chase your first dream"),
		"",
		s.ButtonPrimary.Render(" New Goal "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *GoalListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s stats • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
