package models

import "fmt"

// User owns an ordered collection of goals. In-memory users are snapshots of
// the store; they are not kept in sync automatically.
type User struct {
	Username string
	Password string
	Goals    []*Goal
}

// NewUser builds an in-memory user with no goals.
func NewUser(username, password string) *User {
	return &User{Username: username, Password: password}
}

// AddGoal appends a goal, refusing a name this user already has.
func (u *User) AddGoal(g *Goal) error {
	if _, ok := u.FindGoal(g.Name); ok {
		return fmt.Errorf("%w: %q for user %q", ErrDuplicateGoal, g.Name, u.Username)
	}
	u.Goals = append(u.Goals, g)
	return nil
}

// FindGoal returns the goal with the given name, if present.
func (u *User) FindGoal(name string) (*Goal, bool) {
	for _, g := range u.Goals {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}
