package entity

import (
	"errors"
	"time"
)

var (
	ErrChallengeNotFound = errors.New("auth: no live challenge for user")
	ErrChallengeExpired  = errors.New("auth: challenge has expired")
	ErrChallengeMismatch = errors.New("auth: challenge code does not match")
)

type User struct {
	ID             int64
	FullName       string
	Email          string
	Mobile         string
	IsVerified     bool
	Role           Role
	ApprovalStatus ApprovalStatus
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identifier returns the contact point the user signed up with.
func (u User) Identifier() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Mobile
}

// Channel returns the delivery channel matching the user's identifier.
func (u User) Channel() Channel {
	if u.Email != "" {
		return ChannelEmail
	}
	if u.Mobile != "" {
		return ChannelSMS
	}
	return ChannelUnknown
}

// Challenge is the single live one-time code for a user.
//
// user_id is the primary key, so regenerating a code replaces the previous
// challenge instead of accumulating rows.
type Challenge struct {
	UserID    int64
	CodeHash  string
	ExpiresAt time.Time
	Attempts  int16
	CreatedAt time.Time
}

// ConsumeChallenge carries the inputs for the atomic verify step.
type ConsumeChallenge struct {
	UserID      int64
	CodeHash    string
	Now         time.Time
	MaxAttempts int16
}
