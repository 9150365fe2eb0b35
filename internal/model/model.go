// Package model defines domain entities used by services and repositories.
package model

import "time"

// Account represents a registered identity. The password digest is opaque to
// every layer above the repository and is never serialized to any caller.
type Account struct {
	ID             int64  // surrogate PK, assigned by the database
	Username       string // unique, case-sensitive login name
	Email          string // unique
	PasswordDigest string // Hasher output; never the plaintext secret
	CreatedAt      time.Time
}

// Session is the result of a successful login or registration: the signed
// bearer token plus the identity data the client persists alongside it.
// The server keeps no copy; the client is its only storage.
type Session struct {
	Token     string
	Username  string
	Email     string
	ExpiresAt time.Time
}
