package user

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the service layer; expose users through Public instead.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the view of a user safe to render or serialize for callers.
type Public struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the credential fields.
func (u User) Public() Public {
	return Public{Username: u.Username, CreatedAt: u.CreatedAt}
}
