package domain

import "time"

type User struct {
	Username      string     `db:"username"`
	Password      string     `db:"password"` // bcrypt hashed
	SessionToken  *string    `db:"session_token"`
	SessionExpiry *time.Time `db:"session_expiry"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func NewUser(username, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StartSession rotates the session token and expiry. Token and expiry
// are always set together.
func (u *User) StartSession(token string, expiry time.Time) {
	u.SessionToken = &token
	u.SessionExpiry = &expiry
	u.UpdatedAt = time.Now()
}

// EndSession clears the session token and expiry together.
func (u *User) EndSession() {
	u.SessionToken = nil
	u.SessionExpiry = nil
	u.UpdatedAt = time.Now()
}

// HasActiveSession reports whether the user holds a session token that
// has not expired at the given instant. A token expiring exactly at now
// counts as expired.
func (u *User) HasActiveSession(now time.Time) bool {
	return u.SessionToken != nil && u.SessionExpiry != nil && u.SessionExpiry.After(now)
}
