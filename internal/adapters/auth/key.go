package auth

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// signingKeyLength is 32 bytes, the natural key size for HMAC-SHA256.
const signingKeyLength = 32

// sessionTokenPurpose separates the session-token key from any other key
// derived from the same secret.
const sessionTokenPurpose = "clubevents-session-token-v1"

// ErrEmptySecret is returned when no signing secret is configured.
var ErrEmptySecret = errors.New("signing secret cannot be empty")

// DeriveSigningKey derives the HMAC key for session tokens from the configured
// secret using HKDF-SHA256.
func DeriveSigningKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	r := hkdf.New(sha256.New, secret, nil, []byte(sessionTokenPurpose))
	key := make([]byte, signingKeyLength)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
