// Package store is the persistence layer behind the four Dream Chaser
// tables: users, goals, tasks, and the append-only time log. The default
// backend keeps each table in a flat CSV file; an embedded SQLite backend
// implements the same contract behind the same interface.
package store

import (
	"errors"
	"fmt"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

var (
	// ErrIO marks an underlying storage failure (disk, permissions).
	ErrIO = errors.New("storage failure")
	// ErrTaskNotFound is returned by LogTime when no task row matches.
	// The tables are left untouched in that case.
	ErrTaskNotFound = errors.New("task not found")
)

// ErrMalformedRecord marks a row that could not be decoded.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError reports which table and row failed to decode. Row counts data
// rows from 1, excluding the header.
type RecordError struct {
	Table string
	Row   int
	Msg   string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record: table %s row %d: %s", e.Table, e.Row, e.Msg)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

func malformedf(table string, row int, format string, args ...any) error {
	return &RecordError{Table: table, Row: row, Msg: fmt.Sprintf(format, args...)}
}

func ioErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

// Credential is one users-table record. Username and password travel
// together so callers never have to align two independently read lists.
type Credential struct {
	Username string
	Password string
}

// GoalDates holds the two calendar dates recorded for a goal.
type GoalDates struct {
	DueDate   string
	StartDate string
}

// Store is the persistence contract shared by the CSV and SQLite backends.
//
// Reads are whole-table, uncached scans; absence is reported through empty
// results or ok=false, never through errors. AppendGoal and AppendTasks are
// two separate writes with no cross-table atomicity: a crash between them
// leaves a goal with no tasks. LogTime updates the matching task row first
// and appends the time-log entry second; a crash between the two
// under-counts the weekly ledger but never corrupts a table.
type Store interface {
	EnsureTables() error
	AppendUser(username, password string) error
	Credentials() ([]Credential, error)
	AppendGoal(g *models.Goal) error
	AppendTasks(username, goalName string, tasks []*models.Task) error
	GoalNames(username string) ([]string, error)
	GoalDates(username, goalName string) (GoalDates, bool, error)
	Tasks(username, goalName string) ([]*models.Task, error)
	LogTime(username, goalName, taskName string, hours, minutes int) error
	TimeLog(username, goalName string) ([]models.TimeLogEntry, error)
	Close() error
}
