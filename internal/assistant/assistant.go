// Package assistant produces candidate task lists for a new goal. The
// service layer treats suggested drafts exactly like user-entered ones, so
// any implementation can be swapped in behind the interface.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

// TaskDraft is a candidate task: a name plus an estimate, still subject to
// the user's edits and to normal task validation.
type TaskDraft struct {
	Name    string
	Hours   int
	Minutes int
}

// Assistant proposes tasks for a goal given its name and due date.
type Assistant interface {
	SuggestTasks(ctx context.Context, goalName, dueDate string) ([]TaskDraft, error)
}

// Planner is the built-in offline assistant. It lays out a fixed set of
// study phases and sizes them by the calendar time remaining, scaling to a
// rough hour-per-remaining-day heuristic.
type Planner struct {
	now func() time.Time
}

// NewPlanner returns a Planner on the wall clock.
func NewPlanner() *Planner {
	return &Planner{now: time.Now}
}

// NewPlannerWithClock pins the planner's notion of today.
func NewPlannerWithClock(now func() time.Time) *Planner {
	return &Planner{now: now}
}

var _ Assistant = (*Planner)(nil)

// phases splits any goal into a fixed study plan shape: survey, plan,
// practice, review. Weights sum to 1.
var phases = []struct {
	name   string
	weight float64
}{
	{"Survey the material for %q", 0.15},
	{"Draft a study plan for %q", 0.10},
	{"Work through %q", 0.55},
	{"Review and self-test on %q", 0.20},
}

// SuggestTasks sizes one draft per phase. Unparsable or past due dates fall
// back to a two-week plan.
func (p *Planner) SuggestTasks(ctx context.Context, goalName, dueDate string) ([]TaskDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	days := 14
	if due, err := time.ParseInLocation(models.DateLayout, dueDate, time.UTC); err == nil {
		today := p.now()
		midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		if d := int(due.Sub(midnight).Hours() / 24); d > 0 {
			days = d
		}
	}

	// One focused hour per remaining day, split across the phases.
	totalMinutes := days * 60
	drafts := make([]TaskDraft, 0, len(phases))
	for _, ph := range phases {
		minutes := int(float64(totalMinutes) * ph.weight)
		if minutes < 30 {
			minutes = 30
		}
		name := fmt.Sprintf(ph.name, goalName)
		if runes := []rune(name); len(runes) > models.MaxTaskNameLen {
			name = string(runes[:models.MaxTaskNameLen])
		}
		drafts = append(drafts, TaskDraft{
			Name:    name,
			Hours:   minutes / 60,
			Minutes: minutes % 60,
		})
	}
	return drafts, nil
}
