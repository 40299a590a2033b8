// Package service is the boundary the front-end talks to: sign-up and
// sign-in, goal creation, time logging, and statistics retrieval, each
// mapping onto one or more store operations. Nothing above this package
// touches the store directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dreamchaser/dreamchaser/internal/assistant"
	"github.com/dreamchaser/dreamchaser/internal/models"
	"github.com/dreamchaser/dreamchaser/internal/stats"
	"github.com/dreamchaser/dreamchaser/internal/store"
)

var (
	// ErrUsernameTaken is returned by SignUp when the username exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned by SignIn on a wrong username or
	// password; callers show a message and stay on the sign-in screen.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by LoadUser for an unknown username.
	ErrUserNotFound = errors.New("user not found")
	// ErrGoalNotFound is returned by GoalStatistics for an unknown goal.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrInvalidInput marks a rejected sign-up or goal creation argument.
	ErrInvalidInput = errors.New("invalid input")
)

// Service wires the store, the statistics calculations, and the task
// assistant behind one surface.
type Service struct {
	store     store.Store
	stats     *stats.Stats
	assistant assistant.Assistant
	now       func() time.Time
}

// New builds a Service over st with the built-in planner and wall clock.
func New(st store.Store) *Service {
	return &Service{
		store:     st,
		stats:     stats.New(st),
		assistant: assistant.NewPlanner(),
		now:       time.Now,
	}
}

// NewWithClock pins the clock for the service, its statistics, and its
// planner. Intended for tests.
func NewWithClock(st store.Store, now func() time.Time) *Service {
	return &Service{
		store:     st,
		stats:     stats.NewWithClock(st, now),
		assistant: assistant.NewPlannerWithClock(now),
		now:       now,
	}
}

// Stats exposes the statistics calculations for callers that need a single
// metric rather than the whole GoalStatistics bundle.
func (s *Service) Stats() *stats.Stats { return s.stats }

// UsernameExists reports whether a users-table record carries the name.
func (s *Service) UsernameExists(username string) (bool, error) {
	creds, err := s.store.Credentials()
	if err != nil {
		return false, err
	}
	for _, c := range creds {
		if c.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// SignUp validates and appends a new user. The uniqueness pre-check and the
// append are not atomic; with a single writing process that window is empty.
func (s *Service) SignUp(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}
	taken, err := s.UsernameExists(username)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}
	return s.store.AppendUser(username, password)
}

// SignIn verifies the credentials and opens a session.
func (s *Service) SignIn(username, password string) (*Session, error) {
	ok, err := s.VerifyCredentials(username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return newSession(username, s.now()), nil
}

// VerifyCredentials reports whether the pair matches a stored record.
func (s *Service) VerifyCredentials(username, password string) (bool, error) {
	creds, err := s.store.Credentials()
	if err != nil {
		return false, err
	}
	for _, c := range creds {
		if c.Username == username && c.Password == password {
			return true, nil
		}
	}
	return false, nil
}

// CreateGoalWithTasks validates everything up front, then persists the goal
// row and its task rows. The two appends are separate writes; the goal row
// lands first. Drafts come from the user or the assistant, it makes no
// difference here.
func (s *Service) CreateGoalWithTasks(session *Session, goalName, dueDate, startDate string, drafts []assistant.TaskDraft) error {
	if session == nil {
		return fmt.Errorf("%w: no active session", ErrInvalidInput)
	}
	if strings.TrimSpace(goalName) == "" {
		return fmt.Errorf("%w: goal name must not be empty", ErrInvalidInput)
	}
	due, err := time.ParseInLocation(models.DateLayout, dueDate, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: due date %q: want %s", ErrInvalidInput, dueDate, models.DateLayout)
	}
	start, err := time.ParseInLocation(models.DateLayout, startDate, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: start date %q: want %s", ErrInvalidInput, startDate, models.DateLayout)
	}
	if due.Before(start) {
		return fmt.Errorf("%w: due date %s precedes start date %s", ErrInvalidInput, dueDate, startDate)
	}

	goal := models.NewGoal(session.Username, goalName)
	goal.DueDate = dueDate
	goal.StartDate = startDate
	for _, d := range drafts {
		task, err := models.NewTask(d.Name, d.Hours, d.Minutes)
		if err != nil {
			return err
		}
		if err := goal.AddTask(task); err != nil {
			return err
		}
	}

	if err := s.store.AppendGoal(goal); err != nil {
		return err
	}
	return s.store.AppendTasks(goal.Owner, goal.Name, goal.Tasks)
}

// SuggestTasks asks the assistant for a candidate task list. The drafts are
// for the user to accept or edit before CreateGoalWithTasks.
func (s *Service) SuggestTasks(ctx context.Context, goalName, dueDate string) ([]assistant.TaskDraft, error) {
	return s.assistant.SuggestTasks(ctx, goalName, dueDate)
}

// LogTime records time against a task, updating both ledgers through the
// store. store.ErrTaskNotFound passes through for an unknown triple.
func (s *Service) LogTime(session *Session, goalName, taskName string, hours, minutes int) error {
	if session == nil {
		return fmt.Errorf("%w: no active session", ErrInvalidInput)
	}
	return s.store.LogTime(session.Username, goalName, taskName, hours, minutes)
}

// GoalSummary is one row of the goal list screen.
type GoalSummary struct {
	Name      string
	DueDate   string
	StartDate string
	DaysLeft  int
}

// ListGoals returns a summary per goal owned by the user, in store order.
func (s *Service) ListGoals(username string) ([]GoalSummary, error) {
	names, err := s.store.GoalNames(username)
	if err != nil {
		return nil, err
	}
	summaries := make([]GoalSummary, 0, len(names))
	for _, name := range names {
		dates, ok, err := s.store.GoalDates(username, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			// The goal row vanished between the two scans; skip it.
			continue
		}
		summaries = append(summaries, GoalSummary{
			Name:      name,
			DueDate:   dates.DueDate,
			StartDate: dates.StartDate,
			DaysLeft:  s.stats.DaysLeft(dates.DueDate),
		})
	}
	return summaries, nil
}

// ListTasks returns the goal's tasks fresh from the store.
func (s *Service) ListTasks(username, goalName string) ([]*models.Task, error) {
	return s.store.Tasks(username, goalName)
}

// LoadUser assembles a full snapshot: credentials, goals, and every goal's
// tasks. Goal names already present on the in-memory user are skipped, so
// reloading is idempotent.
func (s *Service) LoadUser(username string) (*models.User, error) {
	creds, err := s.store.Credentials()
	if err != nil {
		return nil, err
	}
	var user *models.User
	for _, c := range creds {
		if c.Username == username {
			user = models.NewUser(c.Username, c.Password)
			break
		}
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}

	names, err := s.store.GoalNames(username)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, ok := user.FindGoal(name); ok {
			continue
		}
		goal := models.NewGoal(username, name)
		if dates, ok, err := s.store.GoalDates(username, name); err != nil {
			return nil, err
		} else if ok {
			goal.DueDate = dates.DueDate
			goal.StartDate = dates.StartDate
		}
		tasks, err := s.store.Tasks(username, name)
		if err != nil {
			return nil, err
		}
		goal.Tasks = tasks
		if err := user.AddGoal(goal); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// GoalStatistics bundles everything the statistics screen shows.
type GoalStatistics struct {
	GoalName      string
	DueDate       string
	StartDate     string
	Completion    float64
	Estimated     models.Duration
	Logged        models.Duration
	DaysLeft      int
	WeeklyGoal    float64
	WeeklyLogged  map[int]int
	PaceAccuracy  float64
	TotalWeeks    int
	OpenTaskCount int
}

// GoalStatistics computes the full derived view for one goal in a single
// call.
func (s *Service) GoalStatistics(username, goalName string) (*GoalStatistics, error) {
	dates, ok, err := s.store.GoalDates(username, goalName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q for user %q", ErrGoalNotFound, goalName, username)
	}

	completion, err := s.stats.CompletionPercentage(username, goalName)
	if err != nil {
		return nil, err
	}
	estimated, err := s.stats.TotalEstimatedTime(username, goalName)
	if err != nil {
		return nil, err
	}
	logged, err := s.stats.TotalLoggedTime(username, goalName)
	if err != nil {
		return nil, err
	}
	open, err := s.stats.IncompleteTasks(username, goalName)
	if err != nil {
		return nil, err
	}
	weekly, err := s.stats.WeeklyLoggedTime(username, goalName)
	if err != nil {
		return nil, err
	}

	weeklyGoal := s.stats.WeeklyHourGoal(estimated.Hours, dates.DueDate)
	return &GoalStatistics{
		GoalName:      goalName,
		DueDate:       dates.DueDate,
		StartDate:     dates.StartDate,
		Completion:    completion,
		Estimated:     estimated,
		Logged:        logged,
		DaysLeft:      s.stats.DaysLeft(dates.DueDate),
		WeeklyGoal:    weeklyGoal,
		WeeklyLogged:  weekly,
		PaceAccuracy:  stats.PaceAccuracy(weekly, weeklyGoal),
		TotalWeeks:    stats.WeeksBetween(dates.DueDate, dates.StartDate),
		OpenTaskCount: len(open),
	}, nil
}
