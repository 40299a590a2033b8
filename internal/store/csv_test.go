package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

func newTestCSV(t *testing.T) *CSV {
	t.Helper()
	s := NewCSVWithClock(t.TempDir(), func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	})
	if err := s.EnsureTables(); err != nil {
		t.Fatalf("ensure tables: %v", err)
	}
	return s
}

func seedGoal(t *testing.T, s *CSV, owner, name, due, start string, tasks ...*models.Task) {
	t.Helper()
	g := models.NewGoal(owner, name)
	g.DueDate = due
	g.StartDate = start
	if err := s.AppendGoal(g); err != nil {
		t.Fatalf("append goal: %v", err)
	}
	if err := s.AppendTasks(owner, name, tasks); err != nil {
		t.Fatalf("append tasks: %v", err)
	}
}

func TestEnsureTables_CreatesHeadersOnce(t *testing.T) {
	dir := t.TempDir()
	s := NewCSV(filepath.Join(dir, "nested", "data"))
	if err := s.EnsureTables(); err != nil {
		t.Fatalf("ensure tables: %v", err)
	}
	// Second call must be a no-op.
	if err := s.EnsureTables(); err != nil {
		t.Fatalf("ensure tables again: %v", err)
	}

	raw, err := os.ReadFile(s.path(tableUsers))
	if err != nil {
		t.Fatalf("read users file: %v", err)
	}
	if string(raw) != "username,password\n" {
		t.Fatalf("unexpected users file contents: %q", raw)
	}
}

func TestAppendUser_AndCredentials(t *testing.T) {
	s := newTestCSV(t)
	if err := s.AppendUser("joy", "pw1"); err != nil {
		t.Fatalf("append user: %v", err)
	}
	if err := s.AppendUser("max", "pw2"); err != nil {
		t.Fatalf("append user: %v", err)
	}

	creds, err := s.Credentials()
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	want := []Credential{{"joy", "pw1"}, {"max", "pw2"}}
	if len(creds) != len(want) {
		t.Fatalf("expected %d credentials, got %d", len(want), len(creds))
	}
	for i := range want {
		if creds[i] != want[i] {
			t.Fatalf("credential %d: want %+v, got %+v", i, want[i], creds[i])
		}
	}
}

func TestAppendGoal_RefusesDuplicateKey(t *testing.T) {
	s := newTestCSV(t)
	task, _ := models.NewTask("Read", 1, 0)
	seedGoal(t, s, "joy", "Learn Go", "2026-12-01", "2026-08-01", task)

	dup := models.NewGoal("joy", "Learn Go")
	dup.DueDate, dup.StartDate = "2027-01-01", "2026-09-01"
	if err := s.AppendGoal(dup); !errors.Is(err, models.ErrDuplicateGoal) {
		t.Fatalf("expected ErrDuplicateGoal, got %v", err)
	}

	// Same goal name under another user is a different key.
	other := models.NewGoal("max", "Learn Go")
	other.DueDate, other.StartDate = "2027-01-01", "2026-09-01"
	if err := s.AppendGoal(other); err != nil {
		t.Fatalf("append goal for other user: %v", err)
	}
}

func TestGoalReads_Sentinels(t *testing.T) {
	s := newTestCSV(t)

	names, err := s.GoalNames("nobody")
	if err != nil {
		t.Fatalf("goal names: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no goals for unknown user, got %v", names)
	}

	if _, ok, err := s.GoalDates("nobody", "nothing"); err != nil || ok {
		t.Fatalf("expected ok=false without error, got ok=%v err=%v", ok, err)
	}

	task, _ := models.NewTask("Read", 1, 0)
	seedGoal(t, s, "joy", "Learn Go", "2026-12-01", "2026-08-01", task)
	dates, ok, err := s.GoalDates("joy", "Learn Go")
	if err != nil || !ok {
		t.Fatalf("goal dates: ok=%v err=%v", ok, err)
	}
	if dates.DueDate != "2026-12-01" || dates.StartDate != "2026-08-01" {
		t.Fatalf("unexpected dates: %+v", dates)
	}
}

func TestLogTime_UpdatesTaskAndAppendsLedger(t *testing.T) {
	s := newTestCSV(t)
	task, _ := models.NewTask("Read Chapter 1", 2, 30)
	seedGoal(t, s, "joy", "Learn Go", "2026-12-01", "2026-08-01", task)

	if err := s.LogTime("joy", "Learn Go", "Read Chapter 1", 1, 45); err != nil {
		t.Fatalf("log time: %v", err)
	}

	tasks, err := s.Tasks("joy", "Learn Go")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Logged != (models.Duration{Hours: 1, Minutes: 45}) || tasks[0].Complete {
		t.Fatalf("unexpected task state: %+v", tasks[0])
	}

	entries, err := s.TimeLog("joy", "Learn Go")
	if err != nil {
		t.Fatalf("time log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	want := models.TimeLogEntry{
		Username: "joy", GoalName: "Learn Go", TaskName: "Read Chapter 1",
		Logged: models.Duration{Hours: 1, Minutes: 45}, Date: "2026-08-28",
	}
	if entries[0] != want {
		t.Fatalf("ledger entry: want %+v, got %+v", want, entries[0])
	}

	// Crossing the completion boundary.
	if err := s.LogTime("joy", "Learn Go", "Read Chapter 1", 0, 45); err != nil {
		t.Fatalf("log time: %v", err)
	}
	tasks, _ = s.Tasks("joy", "Learn Go")
	if !tasks[0].Complete {
		t.Fatalf("task should be complete: %+v", tasks[0])
	}
}

func TestLogTime_UnknownTaskLeavesFilesUntouched(t *testing.T) {
	s := newTestCSV(t)
	task, _ := models.NewTask("Read", 1, 0)
	seedGoal(t, s, "joy", "Learn Go", "2026-12-01", "2026-08-01", task)

	before, err := os.ReadFile(s.path(tableTasks))
	if err != nil {
		t.Fatalf("read tasks file: %v", err)
	}
	ledgerBefore, _ := os.ReadFile(s.path(tableTimeLog))

	err = s.LogTime("joy", "Learn Go", "No Such Task", 1, 0)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	after, _ := os.ReadFile(s.path(tableTasks))
	if !bytes.Equal(before, after) {
		t.Fatalf("tasks file changed on a not-found log:\nbefore=%q\nafter=%q", before, after)
	}
	ledgerAfter, _ := os.ReadFile(s.path(tableTimeLog))
	if !bytes.Equal(ledgerBefore, ledgerAfter) {
		t.Fatalf("time log changed on a not-found log:\nbefore=%q\nafter=%q", ledgerBefore, ledgerAfter)
	}
}

func TestLogTime_DoesNotCrossContaminateUsers(t *testing.T) {
	s := newTestCSV(t)
	taskA, _ := models.NewTask("Read", 5, 0)
	taskB, _ := models.NewTask("Read", 5, 0)
	seedGoal(t, s, "alice", "Learn X", "2026-12-01", "2026-08-01", taskA)
	seedGoal(t, s, "bob", "Learn X", "2026-12-01", "2026-08-01", taskB)

	if err := s.LogTime("alice", "Learn X", "Read", 2, 0); err != nil {
		t.Fatalf("log time: %v", err)
	}

	bobTasks, err := s.Tasks("bob", "Learn X")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(bobTasks) != 1 || !bobTasks[0].Logged.IsZero() {
		t.Fatalf("bob's task was touched by alice's log: %+v", bobTasks)
	}
	if entries, _ := s.TimeLog("bob", "Learn X"); len(entries) != 0 {
		t.Fatalf("bob's ledger received alice's entry: %+v", entries)
	}
}

func TestLogTime_CompleteTaskKeepsTableButRecordsEntry(t *testing.T) {
	s := newTestCSV(t)
	task, _ := models.NewTask("Read", 0, 30)
	seedGoal(t, s, "joy", "Learn Go", "2026-12-01", "2026-08-01", task)

	if err := s.LogTime("joy", "Learn Go", "Read", 1, 0); err != nil {
		t.Fatalf("log time: %v", err)
	}
	if err := s.LogTime("joy", "Learn Go", "Read", 2, 0); err != nil {
		t.Fatalf("log time on complete task: %v", err)
	}

	tasks, _ := s.Tasks("joy", "Learn Go")
	if tasks[0].Logged != (models.Duration{Hours: 1, Minutes: 0}) {
		t.Fatalf("complete task accumulated more time: %+v", tasks[0])
	}
	// The ledger is an event log: both calls are recorded even though the
	// second changed nothing on the task.
	entries, _ := s.TimeLog("joy", "Learn Go")
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
}

func TestTasks_MalformedRowSurfacesRecordError(t *testing.T) {
	s := newTestCSV(t)
	task, _ := models.NewTask("Read", 1, 0)
	seedGoal(t, s, "joy", "Learn Go", "2026-12-01", "2026-08-01", task)

	f, err := os.OpenFile(s.path(tableTasks), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open tasks file: %v", err)
	}
	if _, err := f.WriteString("joy,Learn Go,short\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	_, err = s.Tasks("joy", "Learn Go")
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestReads_MissingFilesAreEmptyTables(t *testing.T) {
	s := NewCSV(t.TempDir()) // EnsureTables never called
	if creds, err := s.Credentials(); err != nil || len(creds) != 0 {
		t.Fatalf("credentials on missing file: %v %v", creds, err)
	}
	if tasks, err := s.Tasks("joy", "Learn Go"); err != nil || len(tasks) != 0 {
		t.Fatalf("tasks on missing file: %v %v", tasks, err)
	}
	if entries, err := s.TimeLog("joy", "Learn Go"); err != nil || len(entries) != 0 {
		t.Fatalf("time log on missing file: %v %v", entries, err)
	}
}

func TestTimeLog_ReadsHeaderlessFile(t *testing.T) {
	s := newTestCSV(t)
	// Older data directories appended entries without ever writing a header.
	if err := os.WriteFile(s.path(tableTimeLog), []byte("joy,Learn Go,Read,1,30,2026-08-20\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := s.TimeLog("joy", "Learn Go")
	if err != nil {
		t.Fatalf("time log: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2026-08-20" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
