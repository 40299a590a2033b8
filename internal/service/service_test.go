package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreamchaser/dreamchaser/internal/assistant"
	"github.com/dreamchaser/dreamchaser/internal/models"
	"github.com/dreamchaser/dreamchaser/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	clock := func() time.Time {
		return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	}
	st := store.NewCSVWithClock(t.TempDir(), clock)
	if err := st.EnsureTables(); err != nil {
		t.Fatalf("ensure tables: %v", err)
	}
	return NewWithClock(st, clock)
}

func signUpAndIn(t *testing.T, svc *Service, username, password string) *Session {
	t.Helper()
	if err := svc.SignUp(username, password); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	session, err := svc.SignIn(username, password)
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return session
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	if err := svc.SignUp("joy", "pw"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if err := svc.SignUp("joy", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	exists, err := svc.UsernameExists("joy")
	if err != nil || !exists {
		t.Fatalf("expected username to exist: %v %v", exists, err)
	}
}

func TestSignUp_RejectsBlankInput(t *testing.T) {
	svc := newTestService(t)
	if err := svc.SignUp("  ", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
	if err := svc.SignUp("joy", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestSignIn(t *testing.T) {
	svc := newTestService(t)
	session := signUpAndIn(t, svc, "joy", "pw")
	if session.Username != "joy" {
		t.Fatalf("session for wrong user: %+v", session)
	}
	if session.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("session ID not assigned")
	}

	if _, err := svc.SignIn("joy", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn("ghost", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestCreateGoalWithTasks_AndListing(t *testing.T) {
	svc := newTestService(t)
	session := signUpAndIn(t, svc, "joy", "pw")

	drafts := []assistant.TaskDraft{
		{Name: "Read Chapter 1", Hours: 2, Minutes: 30},
		{Name: "Write a program", Hours: 1, Minutes: 45},
	}
	if err := svc.CreateGoalWithTasks(session, "Learn Go", "2026-09-11", "2026-08-28", drafts); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	goals, err := svc.ListGoals("joy")
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Name != "Learn Go" || goals[0].DaysLeft != 14 {
		t.Fatalf("unexpected goal list: %+v", goals)
	}

	tasks, err := svc.ListTasks("joy", "Learn Go")
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Name != "Read Chapter 1" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestCreateGoalWithTasks_Validation(t *testing.T) {
	svc := newTestService(t)
	session := signUpAndIn(t, svc, "joy", "pw")
	ok := []assistant.TaskDraft{{Name: "Read", Hours: 1}}

	cases := []struct {
		name   string
		goal   string
		due    string
		start  string
		drafts []assistant.TaskDraft
		want   error
	}{
		{"blank goal name", "  ", "2026-09-11", "2026-08-28", ok, ErrInvalidInput},
		{"bad due date", "G", "9/11/2026", "2026-08-28", ok, ErrInvalidInput},
		{"bad start date", "G", "2026-09-11", "yesterday", ok, ErrInvalidInput},
		{"due before start", "G", "2026-08-01", "2026-08-28", ok, ErrInvalidInput},
		{"invalid task", "G", "2026-09-11", "2026-08-28", []assistant.TaskDraft{{Name: "", Hours: 1}}, models.ErrInvalidTask},
		{"duplicate task names", "G", "2026-09-11", "2026-08-28", []assistant.TaskDraft{{Name: "Read", Hours: 1}, {Name: "Read", Hours: 2}}, models.ErrDuplicateTask},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CreateGoalWithTasks(session, tc.goal, tc.due, tc.start, tc.drafts)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// None of the rejected creations may have written a goal row.
	goals, err := svc.ListGoals("joy")
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("rejected creations leaked rows: %+v", goals)
	}

	if err := svc.CreateGoalWithTasks(session, "G", "2026-09-11", "2026-08-28", ok); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if err := svc.CreateGoalWithTasks(session, "G", "2026-10-11", "2026-08-28", ok); !errors.Is(err, models.ErrDuplicateGoal) {
		t.Fatalf("expected ErrDuplicateGoal, got %v", err)
	}
}

func TestLogTime_ThroughService(t *testing.T) {
	svc := newTestService(t)
	session := signUpAndIn(t, svc, "joy", "pw")
	drafts := []assistant.TaskDraft{{Name: "Read", Hours: 2, Minutes: 30}}
	if err := svc.CreateGoalWithTasks(session, "Learn Go", "2026-09-11", "2026-08-28", drafts); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if err := svc.LogTime(session, "Learn Go", "Read", 1, 0); err != nil {
		t.Fatalf("log time: %v", err)
	}
	if err := svc.LogTime(session, "Learn Go", "ghost", 1, 0); !errors.Is(err, store.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	tasks, _ := svc.ListTasks("joy", "Learn Go")
	if tasks[0].Logged != (models.Duration{Hours: 1}) {
		t.Fatalf("log did not land: %+v", tasks[0])
	}
}

func TestLoadUser_CascadesAndIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	session := signUpAndIn(t, svc, "joy", "pw")
	drafts := []assistant.TaskDraft{{Name: "Read", Hours: 1}}
	if err := svc.CreateGoalWithTasks(session, "Learn Go", "2026-09-11", "2026-08-28", drafts); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	user, err := svc.LoadUser("joy")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Password != "pw" || len(user.Goals) != 1 {
		t.Fatalf("unexpected user snapshot: %+v", user)
	}
	goal := user.Goals[0]
	if goal.DueDate != "2026-09-11" || len(goal.Tasks) != 1 {
		t.Fatalf("cascading load incomplete: %+v", goal)
	}

	if _, err := svc.LoadUser("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGoalStatistics_Bundle(t *testing.T) {
	svc := newTestService(t)
	session := signUpAndIn(t, svc, "joy", "pw")
	drafts := []assistant.TaskDraft{
		{Name: "Read", Hours: 2},
		{Name: "Practice", Hours: 2},
	}
	// Due in 14 days, started today.
	if err := svc.CreateGoalWithTasks(session, "Learn Go", "2026-09-11", "2026-08-28", drafts); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if err := svc.LogTime(session, "Learn Go", "Read", 2, 0); err != nil {
		t.Fatalf("log time: %v", err)
	}

	gs, err := svc.GoalStatistics("joy", "Learn Go")
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if gs.Completion != 50 {
		t.Fatalf("expected 50%% completion, got %v", gs.Completion)
	}
	if gs.Estimated != (models.Duration{Hours: 4}) {
		t.Fatalf("expected 4h estimated, got %v", gs.Estimated)
	}
	if gs.Logged != (models.Duration{Hours: 2}) {
		t.Fatalf("expected 2h logged, got %v", gs.Logged)
	}
	if gs.DaysLeft != 14 {
		t.Fatalf("expected 14 days left, got %d", gs.DaysLeft)
	}
	if gs.WeeklyGoal != 2 {
		t.Fatalf("expected 2 hours/week (4h over 2 weeks), got %v", gs.WeeklyGoal)
	}
	if gs.WeeklyLogged[0] != 2 {
		t.Fatalf("expected 2 hours in week 0, got %v", gs.WeeklyLogged)
	}
	if gs.PaceAccuracy != 100 {
		t.Fatalf("expected 100%% pace accuracy, got %v", gs.PaceAccuracy)
	}
	if gs.OpenTaskCount != 1 {
		t.Fatalf("expected 1 open task, got %d", gs.OpenTaskCount)
	}

	if _, err := svc.GoalStatistics("joy", "ghost"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestSuggestTasks_DraftsAreValidTasks(t *testing.T) {
	svc := newTestService(t)
	drafts, err := svc.SuggestTasks(context.Background(), "Learn Go", "2026-09-11")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(drafts) == 0 {
		t.Fatal("expected at least one draft")
	}
	for _, d := range drafts {
		if _, err := models.NewTask(d.Name, d.Hours, d.Minutes); err != nil {
			t.Fatalf("draft %+v is not a valid task: %v", d, err)
		}
	}
}
