package model

import "time"

// User is a provisioned account. Users are declared through environment
// variables and reconciled into the database at startup; there is no
// self-service registration.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
