package store

import (
	"errors"
	"testing"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

func mustTask(t *testing.T, name string, estH, estM, logH, logM int, complete bool) *models.Task {
	t.Helper()
	task, err := models.NewTask(name, estH, estM)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	task.Logged = models.Duration{Hours: logH, Minutes: logM}
	task.Complete = complete
	return task
}

func TestTaskRow_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		task *models.Task
	}{
		{"fresh", mustTask(t, "Read Chapter 1", 2, 30, 0, 0, false)},
		{"partially logged", mustTask(t, "Write a program", 10, 0, 3, 45, false)},
		{"complete", mustTask(t, "Review notes", 1, 0, 1, 0, true)},
		{"zero estimate complete", mustTask(t, "Kickoff", 0, 0, 0, 0, true)},
		{"name with comma", mustTask(t, "Read, then summarize", 1, 15, 0, 30, false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := encodeTask("joy", "Learn Go", tc.task)
			got, err := decodeTask(row, 1)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if *got != *tc.task {
				t.Fatalf("round trip mismatch: want %+v, got %+v", tc.task, got)
			}
		})
	}
}

func TestDecodeTask_MalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  []string
	}{
		{"short row", []string{"joy", "Learn Go", "Read"}},
		{"long row", []string{"joy", "Learn Go", "Read", "1", "0", "0", "0", "false", "extra"}},
		{"bad hours", []string{"joy", "Learn Go", "Read", "x", "0", "0", "0", "false"}},
		{"bad bool", []string{"joy", "Learn Go", "Read", "1", "0", "0", "0", "maybe"}},
		{"empty task name", []string{"joy", "Learn Go", "", "1", "0", "0", "0", "false"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeTask(tc.row, 7)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
			var rerr *RecordError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *RecordError, got %T", err)
			}
			if rerr.Table != tableTasks || rerr.Row != 7 {
				t.Fatalf("error should name table and row, got table=%q row=%d", rerr.Table, rerr.Row)
			}
		})
	}
}

func TestTimeLogRow_RoundTrip(t *testing.T) {
	entry := models.TimeLogEntry{
		Username: "joy",
		GoalName: "Learn Go",
		TaskName: "Read Chapter 1",
		Logged:   models.Duration{Hours: 1, Minutes: 30},
		Date:     "2026-08-28",
	}
	got, err := decodeTimeLog(encodeTimeLog(entry), 1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != entry {
		t.Fatalf("round trip mismatch: want %+v, got %+v", entry, got)
	}
}

func TestDecodeCredential_WrongArity(t *testing.T) {
	_, err := decodeCredential([]string{"joy"}, 2)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
