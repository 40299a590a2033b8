package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

//go:embed schema.sql
var schema string

// SQLite is the indexed alternative to the flat-file backend. It keeps the
// same four logical tables and the same operation contracts, so callers
// cannot tell the engines apart; only the lookup cost changes.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (or creates) the database file and initializes the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, ioErr("open database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, ioErr("initialize schema", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// SetClock pins the date stamped onto time-log entries. Intended for tests.
func (s *SQLite) SetClock(now func() time.Time) { s.now = now }

// EnsureTables re-applies the schema; every statement is IF NOT EXISTS.
func (s *SQLite) EnsureTables() error {
	if _, err := s.db.Exec(schema); err != nil {
		return ioErr("initialize schema", err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) AppendUser(username, password string) error {
	_, err := s.db.Exec("INSERT INTO users (username, password) VALUES (?, ?)", username, password)
	if err != nil {
		return ioErr("append user", err)
	}
	return nil
}

func (s *SQLite) Credentials() ([]Credential, error) {
	rows, err := s.db.Query("SELECT username, password FROM users ORDER BY rowid")
	if err != nil {
		return nil, ioErr("read users", err)
	}
	defer rows.Close()

	var creds []Credential
	for rows.Next() {
		var c Credential
		if err := rows.Scan(&c.Username, &c.Password); err != nil {
			return nil, ioErr("read users", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("read users", err)
	}
	return creds, nil
}

func (s *SQLite) AppendGoal(g *models.Goal) error {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM goals WHERE username = ? AND goal_name = ?", g.Owner, g.Name,
	).Scan(&one)
	if err == nil {
		return fmt.Errorf("%w: %q for user %q", models.ErrDuplicateGoal, g.Name, g.Owner)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return ioErr("read goals", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO goals (username, goal_name, due_date, start_date) VALUES (?, ?, ?, ?)",
		g.Owner, g.Name, g.DueDate, g.StartDate,
	)
	if err != nil {
		return ioErr("append goal", err)
	}
	return nil
}

func (s *SQLite) AppendTasks(username, goalName string, tasks []*models.Task) error {
	for _, t := range tasks {
		_, err := s.db.Exec(`
			INSERT INTO tasks (username, goal_name, task_name, est_hours, est_minutes, logged_hours, logged_minutes, is_complete)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, username, goalName, t.Name, t.Estimate.Hours, t.Estimate.Minutes, t.Logged.Hours, t.Logged.Minutes, t.Complete)
		if err != nil {
			return ioErr("append task", err)
		}
	}
	return nil
}

func (s *SQLite) GoalNames(username string) ([]string, error) {
	rows, err := s.db.Query("SELECT goal_name FROM goals WHERE username = ? ORDER BY rowid", username)
	if err != nil {
		return nil, ioErr("read goals", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ioErr("read goals", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) GoalDates(username, goalName string) (GoalDates, bool, error) {
	var d GoalDates
	err := s.db.QueryRow(
		"SELECT due_date, start_date FROM goals WHERE username = ? AND goal_name = ?",
		username, goalName,
	).Scan(&d.DueDate, &d.StartDate)
	if errors.Is(err, sql.ErrNoRows) {
		return GoalDates{}, false, nil
	}
	if err != nil {
		return GoalDates{}, false, ioErr("read goals", err)
	}
	return d, true, nil
}

func (s *SQLite) Tasks(username, goalName string) ([]*models.Task, error) {
	rows, err := s.db.Query(`
		SELECT task_name, est_hours, est_minutes, logged_hours, logged_minutes, is_complete
		FROM tasks WHERE username = ? AND goal_name = ? ORDER BY id
	`, username, goalName)
	if err != nil {
		return nil, ioErr("read tasks", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(rows *sql.Rows) (*models.Task, error) {
	var (
		name                   string
		estH, estM, logH, logM int
		complete               bool
	)
	if err := rows.Scan(&name, &estH, &estM, &logH, &logM, &complete); err != nil {
		return nil, ioErr("read tasks", err)
	}
	t, err := models.NewTask(name, estH, estM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	t.Logged = models.Duration{Hours: logH, Minutes: logM}
	t.Complete = complete
	return t, nil
}

// LogTime mirrors the flat-file contract: update the first matching task
// row, then append the time-log entry. No row matched means no write at all.
func (s *SQLite) LogTime(username, goalName, taskName string, hours, minutes int) error {
	if hours < 0 || minutes < 0 {
		return fmt.Errorf("%w: logged time must be non-negative, got %dh %dm", models.ErrInvalidTask, hours, minutes)
	}

	var (
		id                     int64
		name                   string
		estH, estM, logH, logM int
		complete               bool
	)
	err := s.db.QueryRow(`
		SELECT id, task_name, est_hours, est_minutes, logged_hours, logged_minutes, is_complete
		FROM tasks WHERE username = ? AND goal_name = ? AND task_name = ?
		ORDER BY id LIMIT 1
	`, username, goalName, taskName).Scan(&id, &name, &estH, &estM, &logH, &logM, &complete)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q under goal %q for user %q", ErrTaskNotFound, taskName, goalName, username)
	}
	if err != nil {
		return ioErr("read tasks", err)
	}

	task, err := models.NewTask(name, estH, estM)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	task.Logged = models.Duration{Hours: logH, Minutes: logM}
	task.Complete = complete
	if err := task.LogTime(hours, minutes); err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE tasks SET logged_hours = ?, logged_minutes = ?, is_complete = ? WHERE id = ?
	`, task.Logged.Hours, task.Logged.Minutes, task.Complete, id)
	if err != nil {
		return ioErr("update task", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO time_log (username, goal_name, task_name, hours, minutes, date_logged)
		VALUES (?, ?, ?, ?, ?, ?)
	`, username, goalName, taskName, hours, minutes, s.now().Format(models.DateLayout))
	if err != nil {
		return ioErr("append time log", err)
	}
	return nil
}

func (s *SQLite) TimeLog(username, goalName string) ([]models.TimeLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT username, goal_name, task_name, hours, minutes, date_logged
		FROM time_log WHERE username = ? AND goal_name = ? ORDER BY id
	`, username, goalName)
	if err != nil {
		return nil, ioErr("read time log", err)
	}
	defer rows.Close()

	var entries []models.TimeLogEntry
	for rows.Next() {
		var e models.TimeLogEntry
		if err := rows.Scan(&e.Username, &e.GoalName, &e.TaskName, &e.Logged.Hours, &e.Logged.Minutes, &e.Date); err != nil {
			return nil, ioErr("read time log", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
