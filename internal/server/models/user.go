// Package models holds the domain types shared by repositories, services
// and the HTTP layer.
package models

import "time"

// User is the public profile of an identity. Password material never lives
// on this type, so it cannot be serialized by accident.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	TokenVersion int64     `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials is the authentication projection of a user: only what login
// needs to verify a password and issue a token.
type Credentials struct {
	ID           string
	Email        string
	Hash         string
	Salt         string
	TokenVersion int64
}

// Registration carries everything needed to persist a new identity.
type Registration struct {
	ID        string
	FullName  string
	Email     string
	Hash      string
	Salt      string
	CreatedAt time.Time
}
