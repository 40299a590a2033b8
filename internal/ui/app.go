// Package ui wires the bubbletea views into one application model.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dreamchaser/dreamchaser/internal/service"
	"github.com/dreamchaser/dreamchaser/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewSignIn View = iota
	ViewSignUp
	ViewGoals
	ViewGoalForm
	ViewTasks
	ViewSession
	ViewStats
)

type App struct {
	svc         *service.Service
	session     *service.Session
	currentView View

	signIn   *views.SignInView
	signUp   *views.SignUpView
	goals    *views.GoalListView
	goalForm *views.GoalFormView
	tasks    *views.TaskListView
	study    *views.StudySessionView
	stats    *views.StatsView

	// Where Esc from the stats view returns to.
	statsReturn View

	width  int
	height int
}

func NewApp(svc *service.Service) *App {
	return &App{
		svc:         svc,
		currentView: ViewSignIn,
		signIn:      views.NewSignInView(svc),
	}
}

func (a *App) Init() tea.Cmd {
	return a.signIn.Init()
}

// resize replays the last known window size into a freshly created view.
func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) openGoals() tea.Cmd {
	a.currentView = ViewGoals
	a.goals = views.NewGoalListView(a.svc, a.session)
	return tea.Batch(a.goals.Init(), a.resize())
}

func (a *App) openTasks(goal service.GoalSummary) tea.Cmd {
	a.currentView = ViewTasks
	a.tasks = views.NewTaskListView(a.svc, a.session, goal)
	return tea.Batch(a.tasks.Init(), a.resize())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.SignedIn:
		a.session = msg.Session
		return a, a.openGoals()

	case views.SwitchToSignUp:
		a.currentView = ViewSignUp
		a.signUp = views.NewSignUpView(a.svc)
		return a, tea.Batch(a.signUp.Init(), a.resize())

	case views.SwitchToSignIn:
		a.currentView = ViewSignIn
		a.signIn = views.NewSignInView(a.svc)
		return a, tea.Batch(a.signIn.Init(), a.resize())

	case views.SelectedGoal:
		return a, a.openTasks(msg.Goal)

	case views.OpenGoalForm:
		a.currentView = ViewGoalForm
		a.goalForm = views.NewGoalFormView(a.svc, a.session)
		return a, tea.Batch(a.goalForm.Init(), a.resize())

	case views.GoalCreated, views.CancelGoalForm, views.BackToGoals:
		return a, a.openGoals()

	case views.OpenTimer:
		a.currentView = ViewSession
		a.study = views.NewStudySessionView(a.svc, a.session, msg.GoalName, msg.TaskName)
		return a, tea.Batch(a.study.Init(), a.resize())

	case views.SessionDone:
		if a.tasks != nil {
			a.currentView = ViewTasks
			return a, tea.Batch(a.tasks.Init(), a.resize())
		}
		return a, a.openGoals()

	case views.OpenStats:
		a.statsReturn = a.currentView
		a.currentView = ViewStats
		a.stats = views.NewStatsView(a.svc, a.session, msg.GoalName)
		return a, tea.Batch(a.stats.Init(), a.resize())

	case views.CloseStats:
		if a.statsReturn == ViewTasks && a.tasks != nil {
			a.currentView = ViewTasks
			return a, tea.Batch(a.tasks.Init(), a.resize())
		}
		return a, a.openGoals()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewSignIn:
		_, cmd = a.signIn.Update(msg)
	case ViewSignUp:
		_, cmd = a.signUp.Update(msg)
	case ViewGoals:
		_, cmd = a.goals.Update(msg)
	case ViewGoalForm:
		_, cmd = a.goalForm.Update(msg)
	case ViewTasks:
		_, cmd = a.tasks.Update(msg)
	case ViewSession:
		_, cmd = a.study.Update(msg)
	case ViewStats:
		_, cmd = a.stats.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewSignUp:
		if a.signUp != nil {
			return a.signUp.View()
		}
	case ViewGoals:
		if a.goals != nil {
			return a.goals.View()
		}
	case ViewGoalForm:
		if a.goalForm != nil {
			return a.goalForm.View()
		}
	case ViewTasks:
		if a.tasks != nil {
			return a.tasks.View()
		}
	case ViewSession:
		if a.study != nil {
			return a.study.View()
		}
	case ViewStats:
		if a.stats != nil {
			return a.stats.View()
		}
	}
	return a.signIn.View()
}
