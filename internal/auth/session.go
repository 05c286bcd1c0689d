// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified content of a session token.
type Claims struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time // zero when the token never expires
}

// Signer issues and verifies EdDSA-signed session tokens.
type Signer struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	ttl        time.Duration
	now        func() time.Time
}

// NewSigner generates a fresh ed25519 key pair. Tokens expire after ttl; 0 means never.
// Tokens do not survive a restart; use NewSignerFromFile to keep them valid across restarts.
func NewSigner(ttl time.Duration) (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	return &Signer{privateKey: priv, publicKey: pub, ttl: ttl, now: time.Now}, nil
}

// NewSignerFromFile reads a raw ed25519 private key (64 bytes) or seed (32 bytes).
func NewSignerFromFile(privatePath string, ttl time.Duration) (*Signer, error) {
	data, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	var priv ed25519.PrivateKey
	switch len(data) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(data)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(data)
	default:
		return nil, fmt.Errorf("private key file %s: unexpected length %d", privatePath, len(data))
	}

	return &Signer{
		privateKey: priv,
		publicKey:  priv.Public().(ed25519.PublicKey),
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

// TTL is the lifetime of issued tokens.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token with sub = userID and a random jti.
func (s *Signer) Issue(userID uuid.UUID) (string, Claims, error) {
	now := s.now()
	c := Claims{UserID: userID, TokenID: uuid.NewString()}

	reg := jwt.RegisteredClaims{
		Subject:  userID.String(),
		ID:       c.TokenID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		c.ExpiresAt = now.Add(s.ttl)
		reg.ExpiresAt = jwt.NewNumericDate(c.ExpiresAt)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, reg).SignedString(s.privateKey)
	if err != nil {
		return "", Claims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, c, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
func (s *Signer) Verify(tokenString string) (Claims, error) {
	var reg jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tokenString, &reg, func(t *jwt.Token) (interface{}, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(reg.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject: %v", ErrInvalidToken, err)
	}
	if reg.ID == "" {
		return Claims{}, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}

	c := Claims{UserID: userID, TokenID: reg.ID}
	if reg.ExpiresAt != nil {
		c.ExpiresAt = reg.ExpiresAt.Time
	}
	return c, nil
}
