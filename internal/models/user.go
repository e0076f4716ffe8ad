package models

import (
	"fmt"
	"strings"
	"time"
)

// UserRole determines access to the admin surface.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// UserStatus is the lifecycle state of an account holder.
type UserStatus string

const (
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
	UserExpired UserStatus = "EXPIRED"
)

// ParseUserStatus converts a status literal into a UserStatus. Unknown
// literals are rejected rather than defaulted.
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(strings.ToUpper(s)) {
	case UserActive:
		return UserActive, nil
	case UserBlocked:
		return UserBlocked, nil
	case UserExpired:
		return UserExpired, nil
	default:
		return "", fmt.Errorf("%w: unknown user status %q", ErrInvalidArgument, s)
	}
}

// BlocksCards reports whether setting a user to this status must force-block
// all of the user's cards.
func (s UserStatus) BlocksCards() bool {
	return s == UserBlocked || s == UserExpired
}

// User represents an account holder in the system
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Not serialized
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserDto is the admin-facing projection of a user.
type UserDto struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// ToDto builds the admin projection.
func (u *User) ToDto() UserDto {
	return UserDto{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Status:   string(u.Status),
	}
}
