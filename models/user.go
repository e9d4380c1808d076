// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/google/uuid"

// User represents an account entity used for authentication and authorization.
// It is the credential record of the application: identity attributes plus
// the one-way password hash.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID v7 generated by the
	// application at registration time).
	UserID uuid.UUID `json:"id"`

	// Email is the unique login identifier. Compared case-sensitively as
	// stored.
	Email string `json:"email"`

	// FirstName is the given name of the user.
	FirstName string `json:"first_name"`

	// LastName is the family name of the user.
	LastName string `json:"last_name"`

	// PasswordHash stores the self-describing bcrypt digest of the user's
	// password. It is never serialized.
	PasswordHash string `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterUserRequest is the body of POST /auth/.
type RegisterUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// UserResponse is the public projection of [User]. The password hash is not
// part of it.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// NewUserResponse builds the public projection of u.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// PasswordChange is the body of PUT /users/change-password.
type PasswordChange struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8,max=72"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}
