// Package models defines the client-side data model: the authenticated user
// and the analytics payloads returned by the backend. All types mirror the
// backend's JSON shapes; nullable numbers are pointers so a missing metric is
// distinguishable from zero.
package models

// User is the signed-in merchant's profile as returned by the backend.
// The client treats it as immutable: it is always replaced wholesale with
// server data, never patched field by field.
type User struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	EmailVerifiedAt *string `json:"email_verified_at,omitempty"`
	CreatedAt       *string `json:"created_at,omitempty"`
	UpdatedAt       *string `json:"updated_at,omitempty"`
}
