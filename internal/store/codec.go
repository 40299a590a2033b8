package store

import (
	"strconv"
	"strings"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

// Logical table names, also used in RecordError messages.
const (
	tableUsers   = "users"
	tableGoals   = "goals"
	tableTasks   = "tasks"
	tableTimeLog = "loggedTime"
)

// Fixed column layouts. The header is always the first line of a table file;
// the time log may legitimately lack one.
var tableHeaders = map[string][]string{
	tableUsers:   {"username", "password"},
	tableGoals:   {"username", "goalName", "dueDate", "startDate"},
	tableTasks:   {"username", "goalName", "taskName", "estHours", "estMinutes", "loggedHours", "loggedMinutes", "isComplete"},
	tableTimeLog: {"username", "goalName", "taskName", "hours", "minutes", "date"},
}

func encodeTask(username, goalName string, t *models.Task) []string {
	return []string{
		username,
		goalName,
		t.Name,
		strconv.Itoa(t.Estimate.Hours),
		strconv.Itoa(t.Estimate.Minutes),
		strconv.Itoa(t.Logged.Hours),
		strconv.Itoa(t.Logged.Minutes),
		strconv.FormatBool(t.Complete),
	}
}

func decodeTask(row []string, idx int) (*models.Task, error) {
	if len(row) != len(tableHeaders[tableTasks]) {
		return nil, malformedf(tableTasks, idx, "expected %d fields, got %d", len(tableHeaders[tableTasks]), len(row))
	}
	nums := make([]int, 4)
	for i, col := range row[3:7] {
		n, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil {
			return nil, malformedf(tableTasks, idx, "field %d: %v", i+4, err)
		}
		nums[i] = n
	}
	complete, err := strconv.ParseBool(strings.TrimSpace(row[7]))
	if err != nil {
		return nil, malformedf(tableTasks, idx, "isComplete: %v", err)
	}

	task, err := models.NewTask(row[2], nums[0], nums[1])
	if err != nil {
		return nil, malformedf(tableTasks, idx, "%v", err)
	}
	task.Logged = models.Duration{Hours: nums[2], Minutes: nums[3]}
	task.Complete = complete
	return task, nil
}

func encodeTimeLog(e models.TimeLogEntry) []string {
	return []string{
		e.Username,
		e.GoalName,
		e.TaskName,
		strconv.Itoa(e.Logged.Hours),
		strconv.Itoa(e.Logged.Minutes),
		e.Date,
	}
}

func decodeTimeLog(row []string, idx int) (models.TimeLogEntry, error) {
	if len(row) != len(tableHeaders[tableTimeLog]) {
		return models.TimeLogEntry{}, malformedf(tableTimeLog, idx, "expected %d fields, got %d", len(tableHeaders[tableTimeLog]), len(row))
	}
	hours, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return models.TimeLogEntry{}, malformedf(tableTimeLog, idx, "hours: %v", err)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return models.TimeLogEntry{}, malformedf(tableTimeLog, idx, "minutes: %v", err)
	}
	return models.TimeLogEntry{
		Username: row[0],
		GoalName: row[1],
		TaskName: row[2],
		Logged:   models.Duration{Hours: hours, Minutes: minutes},
		Date:     strings.TrimSpace(row[5]),
	}, nil
}

func decodeCredential(row []string, idx int) (Credential, error) {
	if len(row) != len(tableHeaders[tableUsers]) {
		return Credential{}, malformedf(tableUsers, idx, "expected %d fields, got %d", len(tableHeaders[tableUsers]), len(row))
	}
	return Credential{Username: row[0], Password: row[1]}, nil
}
