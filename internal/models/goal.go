package models

import "fmt"

// DateLayout is the calendar date format used across all tables.
const DateLayout = "2006-01-02"

// Goal is a user objective with a start date, a due date, and an ordered task
// list. Construction is pure; loading and saving go through the store.
type Goal struct {
	Owner     string
	Name      string
	DueDate   string // DateLayout
	StartDate string // DateLayout
	Tasks     []*Task
}

// NewGoal builds an in-memory goal with no tasks. Dates may be filled in
// later, before the goal is persisted.
func NewGoal(owner, name string) *Goal {
	return &Goal{Owner: owner, Name: name}
}

// AddTask appends a task, refusing a name already present in this goal.
func (g *Goal) AddTask(t *Task) error {
	if _, ok := g.FindTask(t.Name); ok {
		return fmt.Errorf("%w: %q in goal %q", ErrDuplicateTask, t.Name, g.Name)
	}
	g.Tasks = append(g.Tasks, t)
	return nil
}

// FindTask returns the task with the given name, if present.
func (g *Goal) FindTask(name string) (*Task, bool) {
	for _, t := range g.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
