// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

/*
Package auth implements the user identity layer.

It defines the core domain entities (User, AuthResult) and the logic for
registration, authentication, and protected-route authorization.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of Bodylog.
//
// Accounts are created only via registration and are never mutated or deleted
// afterwards. Username and email are each unique across all users; the store
// enforces this with unique indexes.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the sanitized representation of a user: secret fields
// (the password hash) removed, identifier as a string, timestamp in UTC.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Sanitize builds the client-safe view of the user.
func (user *User) Sanitize() *UserView {
	return &UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC(),
	}
}

// AuthResult is the transient outcome of a registration or login attempt.
// It is returned, never stored. Expected rejections (duplicate identity, bad
// credentials) travel here as Success=false rather than as errors.
type AuthResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *UserView `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}
