package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTask marks a task rejected at construction or logging time.
	ErrInvalidTask = errors.New("invalid task")
	// ErrDuplicateTask marks an attempt to add a task whose name is already
	// taken within the same goal.
	ErrDuplicateTask = errors.New("duplicate task")
	// ErrDuplicateGoal marks an attempt to add a goal whose name is already
	// taken by the same user.
	ErrDuplicateGoal = errors.New("duplicate goal")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTask, fmt.Sprintf(format, args...))
}
