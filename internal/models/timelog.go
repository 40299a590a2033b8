package models

// TimeLogEntry is one immutable record of a logging event. Entries are only
// ever appended; weekly pacing statistics are computed from them,
// independently of the cumulative totals carried on each task.
type TimeLogEntry struct {
	Username string
	GoalName string
	TaskName string
	Logged   Duration
	Date     string // DateLayout
}
