package store

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CSV keeps each table in a flat file under a single data directory:
// users.csv, goals.csv, tasks.csv, loggedTime.csv. Every read re-opens and
// scans the whole file; nothing is cached, so edits made to the files by
// other tools are picked up on the next call. A single mutex serializes
// writers, and full-table rewrites go through a temp file and rename so a
// failed write leaves the previous version intact.
type CSV struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

var _ Store = (*CSV)(nil)

// NewCSV returns a CSV store rooted at dir. Call EnsureTables before use.
func NewCSV(dir string) *CSV {
	return &CSV{dir: dir, now: time.Now}
}

// NewCSVWithClock pins the date stamped onto time-log entries. Intended for
// tests.
func NewCSVWithClock(dir string, now func() time.Time) *CSV {
	return &CSV{dir: dir, now: now}
}

func (s *CSV) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// EnsureTables creates the data directory and any missing table files,
// writing the header line into each new file. Idempotent.
func (s *CSV) EnsureTables() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return ioErr("create data directory", err)
	}
	for table, header := range tableHeaders {
		if _, err := os.Stat(s.path(table)); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return ioErr("stat "+table, err)
		}
		if err := s.writeAll(table, [][]string{header}); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for the flat-file backend; files are never held open
// between operations.
func (s *CSV) Close() error { return nil }

// readAll returns every row of a table, header included when present.
// A missing file reads as an empty table.
func (s *CSV) readAll(table string) ([][]string, error) {
	f, err := os.Open(s.path(table))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioErr("open "+table, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // arity is checked per-table by the codec
	rows, err := r.ReadAll()
	if err != nil {
		return nil, ioErr("read "+table, err)
	}
	return rows, nil
}

// dataRows strips the header line, tolerating its absence (the time log is
// appended to without one in older data directories).
func dataRows(table string, rows [][]string) [][]string {
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] == tableHeaders[table][0] {
		return rows[1:]
	}
	return rows
}

// appendRows adds rows to the end of a table file, creating it (with its
// header) if it does not exist yet. Callers hold the mutex.
func (s *CSV) appendRows(table string, rows [][]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return ioErr("create data directory", err)
	}
	_, statErr := os.Stat(s.path(table))
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(s.path(table), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return ioErr("open "+table, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(tableHeaders[table]); err != nil {
			return ioErr("write "+table, err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return ioErr("write "+table, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ioErr("write "+table, err)
	}
	return nil
}

// writeAll replaces a table file with the given rows via a temp file in the
// same directory followed by a rename, so a crash mid-write cannot truncate
// the previous version. Callers hold the mutex.
func (s *CSV) writeAll(table string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, table+"-*.tmp")
	if err != nil {
		return ioErr("create temp for "+table, err)
	}
	w := csv.NewWriter(tmp)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return ioErr("write "+table, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return ioErr("write "+table, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return ioErr("close "+table, err)
	}
	if err := os.Rename(tmp.Name(), s.path(table)); err != nil {
		os.Remove(tmp.Name())
		return ioErr("replace "+table, err)
	}
	return nil
}
