// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account on the blog.
//
// An account authenticates through exactly one of two paths:
//   - Local password: Password holds a bcrypt hash, GoogleAuth is false.
//   - Google: Password is empty, GoogleAuth is true.
//
// The service layer enforces the split in both directions — a password
// account cannot log in through /google-auth and a Google account cannot
// log in through /signin.
//
// WHY Password `json:"-"`?
// The hash must never appear in an API response, no matter which handler
// serializes the struct. Tagging it out at the model level is safer than
// remembering to omit it in every response type.
type User struct {
	ID         string    `json:"id"         db:"id"`
	Fullname   string    `json:"fullname"   db:"fullname"`
	Email      string    `json:"email"      db:"email"`    // stored lowercase, unique
	Password   string    `json:"-"          db:"password"` // bcrypt hash, empty for Google accounts
	Username   string    `json:"username"   db:"username"` // derived handle, unique
	ProfileImg string    `json:"profileImg" db:"profile_img"`
	GoogleAuth bool      `json:"googleAuth" db:"google_auth"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updated_at"`
}
