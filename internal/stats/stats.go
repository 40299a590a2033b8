// Package stats derives progress and pacing metrics from stored goal data.
// Every operation is a pure function of what the store returns; nothing here
// mutates state.
package stats

import (
	"time"

	"github.com/dreamchaser/dreamchaser/internal/models"
	"github.com/dreamchaser/dreamchaser/internal/store"
)

// Sentinel returned by the day- and week-based calculations when a date has
// passed or cannot be parsed. Absence of an answer is an expected outcome
// here, not an error.
const PastDue = -1

// Stats computes derived metrics over a store. The clock is injectable so
// "today" can be pinned in tests.
type Stats struct {
	store store.Store
	now   func() time.Time
}

// New returns a Stats reading from st with the wall clock.
func New(st store.Store) *Stats {
	return &Stats{store: st, now: time.Now}
}

// NewWithClock returns a Stats with a fixed notion of now.
func NewWithClock(st store.Store, now func() time.Time) *Stats {
	return &Stats{store: st, now: now}
}

// CompletionPercentage is 100 * completed / total over the goal's tasks,
// and 0.0 for a goal with no tasks at all.
func (s *Stats) CompletionPercentage(username, goalName string) (float64, error) {
	tasks, err := s.store.Tasks(username, goalName)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}
	completed := 0
	for _, t := range tasks {
		if t.Complete {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100, nil
}

// TotalEstimatedTime sums the estimates of the goal's tasks.
func (s *Stats) TotalEstimatedTime(username, goalName string) (models.Duration, error) {
	tasks, err := s.store.Tasks(username, goalName)
	if err != nil {
		return models.Duration{}, err
	}
	var total models.Duration
	for _, t := range tasks {
		total = total.Add(t.Estimate)
	}
	return total, nil
}

// TotalLoggedTime sums the goal's time-log entries. This reads the
// append-only ledger, not the cumulative fields on the tasks; the two can
// diverge if a crash lands between a task update and its ledger append.
func (s *Stats) TotalLoggedTime(username, goalName string) (models.Duration, error) {
	entries, err := s.store.TimeLog(username, goalName)
	if err != nil {
		return models.Duration{}, err
	}
	var total models.Duration
	for _, e := range entries {
		total = total.Add(e.Logged)
	}
	return total, nil
}

// IncompleteTasks returns the goal's tasks that are not yet complete.
func (s *Stats) IncompleteTasks(username, goalName string) ([]*models.Task, error) {
	tasks, err := s.store.Tasks(username, goalName)
	if err != nil {
		return nil, err
	}
	var incomplete []*models.Task
	for _, t := range tasks {
		if !t.Complete {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, nil
}

// DaysLeft counts calendar days from today to the due date: 0 means due
// today, PastDue means the date has passed or did not parse.
func (s *Stats) DaysLeft(dueDate string) int {
	due, err := time.ParseInLocation(models.DateLayout, dueDate, time.UTC)
	if err != nil {
		return PastDue
	}
	today := s.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today).Hours() / 24)
	if days < 0 {
		return PastDue
	}
	return days
}

// WeeklyHourGoal is the hours-per-week pace needed to spend
// totalHoursNeeded before the due date. PastDue when no forward-looking pace
// exists (due today or already passed).
func (s *Stats) WeeklyHourGoal(totalHoursNeeded int, dueDate string) float64 {
	daysLeft := s.DaysLeft(dueDate)
	if daysLeft <= 0 {
		return PastDue
	}
	return float64(totalHoursNeeded) / (float64(daysLeft) / 7.0)
}

// WeeksBetween is the whole number of weeks from startDate to dueDate,
// or PastDue if either date fails to parse.
func WeeksBetween(dueDate, startDate string) int {
	due, err := time.ParseInLocation(models.DateLayout, dueDate, time.UTC)
	if err != nil {
		return PastDue
	}
	start, err := time.ParseInLocation(models.DateLayout, startDate, time.UTC)
	if err != nil {
		return PastDue
	}
	return int(due.Sub(start).Hours()/24) / 7
}

// WeeklyLoggedTime buckets the goal's ledger entries into whole hours per
// week, keyed by week index relative to the goal's recorded start date.
// Minutes are truncated per entry, matching how the pacing chart has always
// counted.
func (s *Stats) WeeklyLoggedTime(username, goalName string) (map[int]int, error) {
	dates, ok, err := s.store.GoalDates(username, goalName)
	if err != nil {
		return nil, err
	}
	weekly := make(map[int]int)
	if !ok {
		return weekly, nil
	}
	start, err := time.ParseInLocation(models.DateLayout, dates.StartDate, time.UTC)
	if err != nil {
		return weekly, nil
	}

	entries, err := s.store.TimeLog(username, goalName)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		logged, err := time.ParseInLocation(models.DateLayout, e.Date, time.UTC)
		if err != nil {
			continue
		}
		week := int(logged.Sub(start).Hours()/24) / 7
		weekly[week] += e.Logged.Hours + e.Logged.Minutes/60
	}
	return weekly, nil
}

// PaceAccuracy is the percentage of recorded weeks whose logged hours met
// the weekly goal, and 0 when no weeks are recorded.
func PaceAccuracy(weekly map[int]int, weeklyGoal float64) float64 {
	if len(weekly) == 0 {
		return 0
	}
	met := 0
	for _, hours := range weekly {
		if float64(hours) >= weeklyGoal {
			met++
		}
	}
	return float64(met) / float64(len(weekly)) * 100
}
