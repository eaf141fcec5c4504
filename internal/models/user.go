package models

import (
	"database/sql"
	"time"
)

// UserStatus is the canonical in-memory account status. The users table has
// gone through several schema revisions and live databases carry different
// combinations of boolean columns (is_active, is_approved,
// pending_approval); DeriveStatus is the single place those shapes are
// normalized.
type UserStatus int

const (
	StatusPending UserStatus = iota
	StatusActive
	StatusDisabled
)

func (s UserStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDisabled:
		return "disabled"
	default:
		return "pending"
	}
}

// User is an account. The core computations consume it only as an opaque
// identity plus display name.
type User struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`

	// Raw schema-variant columns, any of which may be absent (null)
	RawActive   sql.NullBool `db:"is_active"`
	RawApproved sql.NullBool `db:"is_approved"`
	RawPending  sql.NullBool `db:"pending_approval"`

	CreatedAt time.Time `db:"created_at"`
}

// Status normalizes the raw boolean columns into one UserStatus
func (u *User) Status() UserStatus {
	return DeriveStatus(u.RawActive, u.RawApproved, u.RawPending)
}

// CanPlay reports whether the user may submit picks and appear on
// leaderboards
func (u *User) CanPlay() bool {
	return u.Status() == StatusActive
}

// DeriveStatus maps the heterogeneous persisted booleans onto one status.
// Precedence, highest first:
//
//  1. is_active = false        -> disabled (an explicit deactivation wins)
//  2. pending_approval = true  -> pending
//  3. is_approved = false      -> pending
//  4. any column affirmative   -> active
//  5. all columns null         -> pending (unknown accounts never play)
func DeriveStatus(active, approved, pending sql.NullBool) UserStatus {
	if active.Valid && !active.Bool {
		return StatusDisabled
	}
	if pending.Valid && pending.Bool {
		return StatusPending
	}
	if approved.Valid && !approved.Bool {
		return StatusPending
	}
	if (active.Valid && active.Bool) || (approved.Valid && approved.Bool) || (pending.Valid && !pending.Bool) {
		return StatusActive
	}
	return StatusPending
}
