package model

import "time"

// User represents a row of the `users` table. The registry serves a single
// internal role, so there is no role column; anyone who can log in can do
// everything. Only the bcrypt hash of the password is stored.
type User struct {
	ID           uint64    `json:"id"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
