package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"clubevents/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Identifier int64  `json:"matricula"`
	Role       string `json:"rol"`
}

// JWTIssuer issues and verifies HS256 session tokens.
type JWTIssuer struct {
	key    []byte
	expiry time.Duration
	now    func() time.Time
}

// Option configures a JWTIssuer.
type Option func(*JWTIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) { i.now = now }
}

// NewJWTIssuer returns an issuer whose tokens expire after expiry. The signing
// key is derived from secret; an empty secret is an error.
func NewJWTIssuer(secret string, expiry time.Duration, opts ...Option) (*JWTIssuer, error) {
	key, err := DeriveSigningKey([]byte(secret))
	if err != nil {
		return nil, err
	}
	i := &JWTIssuer{key: key, expiry: expiry, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs a credential for the member that expires after the issuer's TTL.
func (i *JWTIssuer) Issue(identifier int64, role domain.Role) (string, error) {
	now := i.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identifier, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
		Identifier: identifier,
		Role:       string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses token and returns domain.ErrTokenExpired or
// domain.ErrTokenInvalid when it cannot be trusted.
func (i *JWTIssuer) Verify(token string) (*domain.Identity, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Identifier == 0 || claims.IssuedAt == nil {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.Identity{
		Identifier: claims.Identifier,
		Role:       domain.Role(claims.Role),
		IssuedAt:   claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
