package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User is an account record. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the request-scoped identity derived from a verified token plus
// a live account lookup. Role always comes from the account record, never
// from the token, so a demoted admin loses privilege on the next request.
type Identity struct {
	ID   string
	Role string
}

// Claims is the decoded payload of a session token. The role embedded here
// reflects the account at issue time and may be stale; authorization
// decisions must re-derive the role from storage.
type Claims struct {
	UserID    string
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
