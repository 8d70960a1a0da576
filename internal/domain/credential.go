package domain

import "time"

// CredentialTTL is how long a session token stays valid after issuance.
const CredentialTTL = 8 * time.Hour

// Identity is the decoded content of a verified session token.
type Identity struct {
	Identifier int64
	Role       Role
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TokenIssuer signs session tokens for a member.
type TokenIssuer interface {
	Issue(identifier int64, role Role) (string, error)
}

// TokenVerifier checks a session token and returns the identity it carries.
// It returns ErrTokenInvalid or ErrTokenExpired on failure.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}
