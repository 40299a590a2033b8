package store

import (
	"fmt"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

// AppendTasks adds one tasks-table row per task under (username, goalName).
// This is the second half of goal creation; it is not atomic with
// AppendGoal.
func (s *CSV) AppendTasks(username, goalName string, tasks []*models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, encodeTask(username, goalName, t))
	}
	return s.appendRows(tableTasks, rows)
}

// Tasks returns every task under (username, goalName), in file order.
func (s *CSV) Tasks(username, goalName string) ([]*models.Task, error) {
	rows, err := s.readAll(tableTasks)
	if err != nil {
		return nil, err
	}
	var tasks []*models.Task
	for i, row := range dataRows(tableTasks, rows) {
		if len(row) < 2 || row[0] != username || row[1] != goalName {
			continue
		}
		t, err := decodeTask(row, i+1)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// LogTime accumulates time on the first task row matching the triple, then
// appends one entry to the time log stamped with today's date.
//
// The whole tasks table is read, the matching row updated in memory, and the
// table rewritten atomically before the log append. If no row matches,
// nothing is written and ErrTaskNotFound is returned. A crash between the
// rewrite and the append leaves the cumulative task time updated but the
// weekly ledger one entry short; that window is accepted, not retried.
func (s *CSV) LogTime(username, goalName, taskName string, hours, minutes int) error {
	if hours < 0 || minutes < 0 {
		return fmt.Errorf("%w: logged time must be non-negative, got %dh %dm", models.ErrInvalidTask, hours, minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll(tableTasks)
	if err != nil {
		return err
	}

	found := false
	headerOffset := len(rows) - len(dataRows(tableTasks, rows))
	for i, row := range dataRows(tableTasks, rows) {
		if found || len(row) < 3 || row[0] != username || row[1] != goalName || row[2] != taskName {
			continue
		}
		task, err := decodeTask(row, i+1)
		if err != nil {
			return err
		}
		if err := task.LogTime(hours, minutes); err != nil {
			return err
		}
		rows[i+headerOffset] = encodeTask(username, goalName, task)
		found = true
	}
	if !found {
		return fmt.Errorf("%w: %q under goal %q for user %q", ErrTaskNotFound, taskName, goalName, username)
	}

	// Task-table rewrite happens-before the time-log append.
	if err := s.writeAll(tableTasks, rows); err != nil {
		return err
	}
	entry := models.TimeLogEntry{
		Username: username,
		GoalName: goalName,
		TaskName: taskName,
		Logged:   models.Duration{Hours: hours, Minutes: minutes},
		Date:     s.now().Format(models.DateLayout),
	}
	return s.appendRows(tableTimeLog, [][]string{encodeTimeLog(entry)})
}

// TimeLog returns every time-log entry recorded for (username, goalName),
// oldest first.
func (s *CSV) TimeLog(username, goalName string) ([]models.TimeLogEntry, error) {
	rows, err := s.readAll(tableTimeLog)
	if err != nil {
		return nil, err
	}
	var entries []models.TimeLogEntry
	for i, row := range dataRows(tableTimeLog, rows) {
		if len(row) < 2 || row[0] != username || row[1] != goalName {
			continue
		}
		e, err := decodeTimeLog(row, i+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
