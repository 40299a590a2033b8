package stats

import (
	"testing"
	"time"

	"github.com/dreamchaser/dreamchaser/internal/models"
	"github.com/dreamchaser/dreamchaser/internal/store"
)

// fakeStore serves canned data so the calculations are tested without a
// filesystem.
type fakeStore struct {
	store.Store // panic on anything not overridden

	tasks   []*models.Task
	entries []models.TimeLogEntry
	dates   store.GoalDates
	hasGoal bool
}

func (f *fakeStore) Tasks(username, goalName string) ([]*models.Task, error) {
	return f.tasks, nil
}

func (f *fakeStore) TimeLog(username, goalName string) ([]models.TimeLogEntry, error) {
	return f.entries, nil
}

func (f *fakeStore) GoalDates(username, goalName string) (store.GoalDates, bool, error) {
	return f.dates, f.hasGoal, nil
}

// today is the pinned clock for every test: 2026-08-28.
func today() time.Time {
	return time.Date(2026, 8, 28, 15, 30, 0, 0, time.Local)
}

func pinned(fs *fakeStore) *Stats {
	return NewWithClock(fs, today)
}

func task(t *testing.T, name string, estH int, logged models.Duration, complete bool) *models.Task {
	t.Helper()
	tk, err := models.NewTask(name, estH, 0)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	tk.Logged = logged
	tk.Complete = complete
	return tk
}

func TestCompletionPercentage(t *testing.T) {
	s := pinned(&fakeStore{})
	pct, err := s.CompletionPercentage("joy", "Learn Go")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if pct != 0 {
		t.Fatalf("zero tasks must give 0.0, got %v", pct)
	}

	fs := &fakeStore{tasks: []*models.Task{
		task(t, "a", 1, models.Duration{Hours: 1}, true),
		task(t, "b", 1, models.Duration{Hours: 1}, true),
		task(t, "c", 4, models.Duration{}, false),
		task(t, "d", 4, models.Duration{}, false),
	}}
	pct, err = pinned(fs).CompletionPercentage("joy", "Learn Go")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if pct != 50 {
		t.Fatalf("expected 50%%, got %v", pct)
	}

	for _, tk := range fs.tasks {
		tk.Complete = true
	}
	pct, _ = pinned(fs).CompletionPercentage("joy", "Learn Go")
	if pct != 100 {
		t.Fatalf("expected 100%%, got %v", pct)
	}
}

func TestTotalEstimatedTime_NormalizesMinutes(t *testing.T) {
	t1, _ := models.NewTask("a", 1, 40)
	t2, _ := models.NewTask("b", 2, 50)
	fs := &fakeStore{tasks: []*models.Task{t1, t2}}

	total, err := pinned(fs).TotalEstimatedTime("joy", "Learn Go")
	if err != nil {
		t.Fatalf("estimated: %v", err)
	}
	if total != (models.Duration{Hours: 4, Minutes: 30}) {
		t.Fatalf("expected 4h 30m, got %v", total)
	}
}

func TestTotalLoggedTime_ReadsLedgerNotTasks(t *testing.T) {
	fs := &fakeStore{
		tasks: []*models.Task{task(t, "a", 10, models.Duration{Hours: 9}, false)},
		entries: []models.TimeLogEntry{
			{Logged: models.Duration{Hours: 1, Minutes: 30}},
			{Logged: models.Duration{Hours: 0, Minutes: 45}},
		},
	}
	total, err := pinned(fs).TotalLoggedTime("joy", "Learn Go")
	if err != nil {
		t.Fatalf("logged: %v", err)
	}
	// 2h15m from the ledger; the 9h on the task is a separate ledger and
	// must not leak in.
	if total != (models.Duration{Hours: 2, Minutes: 15}) {
		t.Fatalf("expected 2h 15m, got %v", total)
	}
}

func TestIncompleteTasks(t *testing.T) {
	fs := &fakeStore{tasks: []*models.Task{
		task(t, "done", 1, models.Duration{Hours: 1}, true),
		task(t, "open", 2, models.Duration{}, false),
	}}
	open, err := pinned(fs).IncompleteTasks("joy", "Learn Go")
	if err != nil {
		t.Fatalf("incomplete: %v", err)
	}
	if len(open) != 1 || open[0].Name != "open" {
		t.Fatalf("unexpected incomplete set: %+v", open)
	}
}

func TestDaysLeft(t *testing.T) {
	s := pinned(&fakeStore{})
	cases := []struct {
		date string
		want int
	}{
		{"2026-08-28", 0},  // today
		{"2026-08-29", 1},  // tomorrow
		{"2026-09-04", 7},  // next week
		{"2026-08-27", -1}, // yesterday
		{"2020-01-01", -1}, // long past
		{"not-a-date", -1}, // unparsable
	}
	for _, tc := range cases {
		if got := s.DaysLeft(tc.date); got != tc.want {
			t.Fatalf("DaysLeft(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestWeeklyHourGoal(t *testing.T) {
	s := pinned(&fakeStore{})

	if got := s.WeeklyHourGoal(32, "2026-08-01"); got != PastDue {
		t.Fatalf("overdue goal must give -1, got %v", got)
	}
	if got := s.WeeklyHourGoal(32, "2026-08-28"); got != PastDue {
		t.Fatalf("due today has no forward pace, got %v", got)
	}
	// 14 days left = 2 weeks; 32 hours over 2 weeks = 16 per week.
	if got := s.WeeklyHourGoal(32, "2026-09-11"); got != 16 {
		t.Fatalf("expected 16 hours/week, got %v", got)
	}
}

func TestWeeksBetween(t *testing.T) {
	if got := WeeksBetween("2026-09-25", "2026-08-28"); got != 4 {
		t.Fatalf("expected 4 weeks, got %d", got)
	}
	if got := WeeksBetween("2026-09-03", "2026-08-28"); got != 0 {
		t.Fatalf("six days is 0 whole weeks, got %d", got)
	}
	if got := WeeksBetween("garbage", "2026-08-28"); got != PastDue {
		t.Fatalf("unparsable dates must give -1, got %d", got)
	}
}

func TestWeeklyLoggedTime_BucketsByWeekFromStart(t *testing.T) {
	fs := &fakeStore{
		hasGoal: true,
		dates:   store.GoalDates{DueDate: "2026-12-01", StartDate: "2026-08-03"},
		entries: []models.TimeLogEntry{
			{Logged: models.Duration{Hours: 2, Minutes: 0}, Date: "2026-08-03"},  // week 0
			{Logged: models.Duration{Hours: 1, Minutes: 59}, Date: "2026-08-05"}, // week 0, minutes truncated
			{Logged: models.Duration{Hours: 3, Minutes: 0}, Date: "2026-08-10"},  // week 1
			{Logged: models.Duration{Hours: 0, Minutes: 30}, Date: "2026-08-24"}, // week 3, truncates to 0
		},
	}

	weekly, err := pinned(fs).WeeklyLoggedTime("joy", "Learn Go")
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	want := map[int]int{0: 3, 1: 3, 3: 0}
	if len(weekly) != len(want) {
		t.Fatalf("expected %v, got %v", want, weekly)
	}
	for week, hours := range want {
		if weekly[week] != hours {
			t.Fatalf("week %d: expected %d hours, got %d (full map %v)", week, hours, weekly[week], weekly)
		}
	}
}

func TestWeeklyLoggedTime_UnknownGoalIsEmpty(t *testing.T) {
	weekly, err := pinned(&fakeStore{}).WeeklyLoggedTime("joy", "nothing")
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(weekly) != 0 {
		t.Fatalf("expected empty map for unknown goal, got %v", weekly)
	}
}

func TestPaceAccuracy(t *testing.T) {
	if got := PaceAccuracy(map[int]int{}, 10); got != 0 {
		t.Fatalf("empty map must give 0, got %v", got)
	}
	weekly := map[int]int{0: 12, 1: 8, 2: 10, 3: 2}
	// Weeks 0 and 2 meet a 10-hour goal.
	if got := PaceAccuracy(weekly, 10); got != 50 {
		t.Fatalf("expected 50%%, got %v", got)
	}
}
