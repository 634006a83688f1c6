package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
)

// ErrInvalidToken is returned when a session token fails verification or
// has outlived its TTL.
var ErrInvalidToken = errors.New("invalid or expired session token")

// TokenCodec encrypts session IDs into opaque cookie tokens and back.
type TokenCodec struct {
	key *fernet.Key
	ttl time.Duration
}

// NewTokenCodec builds a codec from a base64 fernet key. When encodedKey is
// empty a fresh key is generated, which invalidates all outstanding tokens
// on restart.
func NewTokenCodec(encodedKey string, ttl time.Duration) (*TokenCodec, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &TokenCodec{key: &key, ttl: ttl}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}
	return &TokenCodec{key: key, ttl: ttl}, nil
}

// Encode wraps a session ID into an encrypted, signed token.
func (c *TokenCodec) Encode(sessionID string) (string, error) {
	tok, err := fernet.EncryptAndSign([]byte(sessionID), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt session token: %w", err)
	}
	return string(tok), nil
}

// Decode verifies a token and returns the session ID inside it.
func (c *TokenCodec) Decode(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), c.ttl, []*fernet.Key{c.key})
	if msg == nil {
		return "", ErrInvalidToken
	}
	return string(msg), nil
}

// TTL is the codec's token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}
