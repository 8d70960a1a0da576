package services

import (
	"context"
	"errors"
	"fmt"

	"clubevents/internal/domain"
)

type authService struct {
	members     domain.MemberDirectory
	tokenIssuer domain.TokenIssuer
}

// NewAuthService creates an AuthService that logs members in by identifier.
func NewAuthService(members domain.MemberDirectory, tokenIssuer domain.TokenIssuer) domain.AuthService {
	return &authService{
		members:     members,
		tokenIssuer: tokenIssuer,
	}
}

// Login issues a session token for a registered identifier. Unknown
// identifiers fail with ErrUnauthenticated.
func (s *authService) Login(ctx context.Context, identifier int64) (string, *domain.Member, error) {
	if identifier <= 0 {
		return "", nil, fmt.Errorf("%w: invalid identifier", domain.ErrValidation)
	}
	member, err := s.members.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: identifier not registered", domain.ErrUnauthenticated)
		}
		return "", nil, fmt.Errorf("failed to get member: %w", err)
	}
	token, err := s.tokenIssuer.Issue(member.Identifier, member.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, member, nil
}

func (s *authService) Profile(ctx context.Context, identifier int64) (*domain.Member, error) {
	member, err := s.members.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}
