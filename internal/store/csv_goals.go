package store

import (
	"fmt"

	"github.com/dreamchaser/dreamchaser/internal/models"
)

// AppendGoal adds one row to the goals table, refusing an (owner, name) pair
// already present. Tasks are persisted separately through AppendTasks.
func (s *CSV) AppendGoal(g *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll(tableGoals)
	if err != nil {
		return err
	}
	for _, row := range dataRows(tableGoals, rows) {
		if len(row) >= 2 && row[0] == g.Owner && row[1] == g.Name {
			return fmt.Errorf("%w: %q for user %q", models.ErrDuplicateGoal, g.Name, g.Owner)
		}
	}
	return s.appendRows(tableGoals, [][]string{{g.Owner, g.Name, g.DueDate, g.StartDate}})
}

// GoalNames returns the names of every goal owned by username, in file
// order. A user with no goals reads as an empty list.
func (s *CSV) GoalNames(username string) ([]string, error) {
	rows, err := s.readAll(tableGoals)
	if err != nil {
		return nil, err
	}
	var names []string
	for i, row := range dataRows(tableGoals, rows) {
		if len(row) != len(tableHeaders[tableGoals]) {
			return nil, malformedf(tableGoals, i+1, "expected %d fields, got %d", len(tableHeaders[tableGoals]), len(row))
		}
		if row[0] == username {
			names = append(names, row[1])
		}
	}
	return names, nil
}

// GoalDates returns the due and start dates recorded for a goal, with
// ok=false when no row matches.
func (s *CSV) GoalDates(username, goalName string) (GoalDates, bool, error) {
	rows, err := s.readAll(tableGoals)
	if err != nil {
		return GoalDates{}, false, err
	}
	for i, row := range dataRows(tableGoals, rows) {
		if len(row) != len(tableHeaders[tableGoals]) {
			return GoalDates{}, false, malformedf(tableGoals, i+1, "expected %d fields, got %d", len(tableHeaders[tableGoals]), len(row))
		}
		if row[0] == username && row[1] == goalName {
			return GoalDates{DueDate: row[2], StartDate: row[3]}, true, nil
		}
	}
	return GoalDates{}, false, nil
}
