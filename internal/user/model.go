package user

import "time"

// User represents a registered wallet owner.
type User struct {
	ID           string
	Username     string
	PhoneNumber  string
	PasswordHash []byte
	PasswordSalt []byte
	CreatedAt    time.Time
}

// Profile is the public projection of a user.
type Profile struct {
	Username    string    `json:"username"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile returns the user's public projection.
func (u User) Profile() Profile {
	return Profile{Username: u.Username, PhoneNumber: u.PhoneNumber, CreatedAt: u.CreatedAt}
}

// Registration captures the data required to register a user.
type Registration struct {
	Username        string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// Login captures credentials presented at login.
type Login struct {
	PhoneNumber string
	Password    string
}
