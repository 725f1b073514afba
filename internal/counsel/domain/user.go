package domain

import "time"

type User struct {
	ID             int64
	Email          string
	HashedPassword string // argon2id PHC string, or a legacy bcrypt hash
	FullName       string
	IsActive       bool
	IsOnboarded    bool
	CreatedAt      time.Time
}

// DisplayName is what other participants see for this user in a voice room.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
