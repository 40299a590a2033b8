package service

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one signed-in user. It is created by SignIn and passed
// explicitly to the operations that act on the user's behalf; there is no
// process-wide current user.
type Session struct {
	ID        uuid.UUID
	Username  string
	StartedAt time.Time
}

func newSession(username string, at time.Time) *Session {
	return &Session{ID: uuid.New(), Username: username, StartedAt: at}
}
