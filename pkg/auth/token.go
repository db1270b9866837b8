// Package auth provides the access token codec for the catalog service.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Claims is the identity carried by a verified access token.
type Claims struct {
	UserID int64
	Name   string
}

// Verifier validates an access token string and returns the claims it carries.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (Claims, error)
}

// Issuer mints a signed access token for the given user.
type Issuer interface {
	Issue(userID int64, name string) (string, error)
}

// Codec issues and verifies HS256-signed, time-bounded access tokens.
// It is stateless and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with the given shared secret.
// Issued tokens expire after ttl.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token embedding the user's id and name.
func (c *Codec) Issue(userID int64, name string) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(c.ttl)).
		Claim("id", userID).
		Claim("name", name).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), c.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify parses and validates a token string. A malformed, tampered or
// expired token, or one without a user id claim, yields an error; untrusted
// input never panics.
func (c *Codec) Verify(_ context.Context, tokenString string) (Claims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), c.secret),
		// Standard validation checks - expiration, not before, etc.
		jwt.WithValidate(true),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to verify token: %w", err)
	}

	// Private claims round-trip through JSON, so numbers come back as float64.
	var id float64
	if err := token.Get("id", &id); err != nil || id == 0 {
		return Claims{}, fmt.Errorf("token carries no user id claim")
	}
	var name string
	_ = token.Get("name", &name)

	return Claims{UserID: int64(id), Name: name}, nil
}
