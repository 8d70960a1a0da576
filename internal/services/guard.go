package services

import (
	"fmt"
	"strings"

	"clubevents/internal/domain"
)

// Guard gates operations on a verified session token and an allow-list of roles.
type Guard struct {
	verifier domain.TokenVerifier
}

// NewGuard returns a Guard that verifies tokens with verifier.
func NewGuard(verifier domain.TokenVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authorize verifies token and checks its role against required. An empty
// required set admits any authenticated identity. Missing, invalid and expired
// tokens fail with ErrUnauthenticated (wrapping the verification error); a valid
// token whose role is not allowed fails with ErrForbidden.
func (g *Guard) Authorize(token string, required domain.RoleSet) (*domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrUnauthenticated
	}
	id, err := g.verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !required.Allows(id.Role) {
		return nil, fmt.Errorf("%w: role %q", domain.ErrForbidden, id.Role)
	}
	return id, nil
}
