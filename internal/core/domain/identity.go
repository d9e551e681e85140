package domain

import "time"

// Identity is the request-scoped result of verifying a bearer token. It is
// attached to the request context by the auth middleware and discarded when
// handling ends; it is never shared across requests.
type Identity struct {
	UserID    string
	Role      string
	TokenID   string // jti, used for revocation
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
