// Package auth contains domain-level types for the mock-token identity
// scheme: roles, identity claims, the token codec, and the route access
// policy. It is pure and free of transport/adapter concerns.
package auth

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleViewer
}

// RoleForEmail derives the role for an email address. The demo defines two
// special addresses; everything else is a viewer. The match is exact and
// case-sensitive, so "Admin@demo.com" is a viewer.
func RoleForEmail(email string) Role {
	switch email {
	case "admin@demo.com":
		return RoleAdmin
	case "manager@demo.com":
		return RoleManager
	default:
		return RoleViewer
	}
}

// Claims is the identity payload carried by a token. The email is the
// presented identity, not independently verified; the role is derived from
// the email at issuance time.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Exp   int64  `json:"exp"` // unix seconds
}

// TokenTTL is how long an issued claim stays valid.
const TokenTTL = 24 * time.Hour

// Expired reports whether the claim's expiry has passed at the given time.
func (c Claims) Expired(now time.Time) bool {
	return c.Exp*1000 < now.UnixMilli()
}
