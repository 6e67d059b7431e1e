// internal/auth/gate.go
package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for any failed admin check.
var ErrUnauthorized = errors.New("unauthorized")

const adminSubject = "admin"

// Gate guards admin operations. Admins prove themselves with the shared secret or with a
// token issued by Login. A disabled Gate lets everything through.
type Gate struct {
	enabled    bool
	secretHash string
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	expire     time.Duration // 0 means tokens never expire
	now        func() time.Time
}

// NewGate hashes secret and generates a fresh signing key pair. Tokens do not survive a
// restart.
func NewGate(enabled bool, secret string, expire time.Duration, params HashParams) (*Gate, error) {
	g := &Gate{enabled: enabled, expire: expire, now: time.Now}
	if !enabled {
		return g, nil
	}
	if secret == "" {
		return nil, errors.New("admin secret is required when admin auth is enabled")
	}

	hash, err := HashSecret(secret, params)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	g.secretHash = hash

	g.publicKey, g.privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key pair: %w", err)
	}
	return g, nil
}

// Enabled reports whether admin checks are enforced.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// Login exchanges the admin secret for a signed token.
func (g *Gate) Login(secret string) (string, error) {
	if !g.enabled {
		return "", nil
	}
	if err := g.checkSecret(secret); err != nil {
		return "", err
	}
	return g.CreateToken()
}

// CreateToken signs an admin token, expiring after the configured duration when one is set.
func (g *Gate) CreateToken() (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"iat": now.Unix(),
	}
	if g.expire > 0 {
		claims["exp"] = now.Add(g.expire).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(g.privateKey)
}

// AuthenticateToken verifies tok was issued by this gate and has not expired.
func (g *Gate) AuthenticateToken(tok string) error {
	t, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.publicKey, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	sub, err := t.Claims.GetSubject()
	if err != nil || sub != adminSubject {
		return fmt.Errorf("%w: bad subject", ErrUnauthorized)
	}
	return nil
}

// Check passes when the gate is disabled, the token is valid, or the secret matches.
func (g *Gate) Check(secret, token string) error {
	if !g.enabled {
		return nil
	}
	if token != "" && g.AuthenticateToken(token) == nil {
		return nil
	}
	if secret != "" {
		return g.checkSecret(secret)
	}
	return ErrUnauthorized
}

func (g *Gate) checkSecret(secret string) error {
	ok, err := VerifySecret(secret, g.secretHash)
	if err != nil {
		return fmt.Errorf("verify admin secret: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}
