package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Nickname     string
	FullName     string
	Role         Role
	RegisteredAt time.Time
}

// IsZero reports whether the user is the anonymous value.
func (u User) IsZero() bool {
	return u.ID == uuid.Nil
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session references a user by ID only, the full record is re-resolved
// on every request so role changes take effect without re-login.
type Session struct {
	Token     uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
