package auth

import (
	"strings"
	"testing"
	"time"

	"clubevents/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", domain.CredentialTTL)
	require.NoError(t, err)

	token, err := issuer.Issue(1001, "Miembro")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id.Identifier)
	assert.Equal(t, domain.Role("Miembro"), id.Role)
	assert.Equal(t, domain.CredentialTTL, id.ExpiresAt.Sub(id.IssuedAt))
}

func TestJWTIssuer_Verify_expiry(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr error
	}{
		{name: "just issued", elapsed: 0},
		{name: "one second before expiry", elapsed: domain.CredentialTTL - time.Second},
		{name: "one second after expiry", elapsed: domain.CredentialTTL + time.Second, wantErr: domain.ErrTokenExpired},
		{name: "a day later", elapsed: 24 * time.Hour, wantErr: domain.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := NewJWTIssuer("test-secret", domain.CredentialTTL, WithClock(fixedClock(issuedAt)))
			require.NoError(t, err)
			token, err := signer.Issue(42, "Presidenta")
			require.NoError(t, err)

			verifier, err := NewJWTIssuer("test-secret", domain.CredentialTTL, WithClock(fixedClock(issuedAt.Add(tt.elapsed))))
			require.NoError(t, err)
			id, err := verifier.Verify(token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), id.Identifier)
		})
	}
}

func TestJWTIssuer_Verify_invalid(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", domain.CredentialTTL)
	require.NoError(t, err)
	other, err := NewJWTIssuer("another-secret", domain.CredentialTTL)
	require.NoError(t, err)

	good, err := issuer.Issue(7, "Miembro")
	require.NoError(t, err)
	foreign, err := other.Issue(7, "Miembro")
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	tamperedSig := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	// Signed with the raw secret instead of the derived key.
	rawKeyToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Identifier: 7,
		Role:       "Presidenta",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Identifier: 7,
		Role:       "Presidenta",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered signature", tamperedSig},
		{"different secret", foreign},
		{"raw secret key", rawKeyToken},
		{"alg none", noneToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := issuer.Verify(tt.token)
			require.ErrorIs(t, err, domain.ErrTokenInvalid)
			assert.Nil(t, id)
		})
	}
}

func TestNewJWTIssuer_emptySecret(t *testing.T) {
	_, err := NewJWTIssuer("", domain.CredentialTTL)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestDeriveSigningKey(t *testing.T) {
	k1, err := DeriveSigningKey([]byte("secret"))
	require.NoError(t, err)
	k2, err := DeriveSigningKey([]byte("secret"))
	require.NoError(t, err)
	k3, err := DeriveSigningKey([]byte("secret2"))
	require.NoError(t, err)

	assert.Len(t, k1, signingKeyLength)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, []byte("secret"), k1)
}
