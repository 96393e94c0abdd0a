// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultImageFile is the profile picture reference assigned to every new
// account until the user uploads a picture of their own.
const DefaultImageFile = "default.jpg"

// User represents a registered blog author.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique public name shown next to posts and used in
	// the /user/{username} route.
	Username string `json:"username"`

	// Email is the unique address used for login and password reset mail.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Plaintext passwords are never persisted.
	PasswordHash string `json:"-"`

	// ImageFile is the storage name of the profile picture.
	ImageFile string `json:"image_file"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate carries the account fields a user may change on the
// /account page. Nil fields are left untouched.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	ImageFile *string
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.ImageFile == nil
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
