package models

import (
	"strings"
	"unicode/utf8"
)

// MaxTaskNameLen is the longest task name accepted by NewTask.
const MaxTaskNameLen = 100

// Task is a unit of work under a goal: an estimate, the time logged so far,
// and a completion flag. Completion is derived from time, never set directly,
// and never reverts once reached.
type Task struct {
	Name     string
	Estimate Duration
	Logged   Duration
	Complete bool
}

// NewTask validates the name and estimate and returns a fresh task with no
// logged time.
func NewTask(name string, estHours, estMinutes int) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("name must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxTaskNameLen {
		return nil, invalidf("name %q exceeds %d characters", name, MaxTaskNameLen)
	}
	if estHours < 0 || estMinutes < 0 || estMinutes >= 60 {
		return nil, invalidf("estimate must be non-negative with minutes below 60, got %dh %dm", estHours, estMinutes)
	}
	return &Task{
		Name:     name,
		Estimate: Duration{Hours: estHours, Minutes: estMinutes},
	}, nil
}

// LogTime accumulates time toward completion. Negative input is rejected.
// Logging against a complete task is a deliberate no-op: the caller sees no
// error and the task does not change.
func (t *Task) LogTime(hours, minutes int) error {
	if hours < 0 || minutes < 0 {
		return invalidf("logged time must be non-negative, got %dh %dm", hours, minutes)
	}
	if t.Complete {
		return nil
	}
	t.Logged = t.Logged.Add(Duration{Hours: hours, Minutes: minutes})
	if t.Logged.TotalMinutes() >= t.Estimate.TotalMinutes() {
		t.Complete = true
	}
	return nil
}

// Remaining returns the estimate minus logged time, or zero once the task is
// complete or over-logged.
func (t *Task) Remaining() Duration {
	if t.Complete {
		return Duration{}
	}
	return FromMinutes(t.Estimate.TotalMinutes() - t.Logged.TotalMinutes())
}
