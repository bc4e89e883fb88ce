package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "myfinbank-admin"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrInvalidTTL   = errors.New("token ttl must be positive")
	ErrEmptySubject = errors.New("token subject is required")
)

// Claims represents the identity token claims
type Claims struct {
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 identity tokens with a single static secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	key []byte
}

// NewCodec creates a codec for the given secret
func NewCodec(secret string) *Codec {
	return &Codec{key: []byte(secret)}
}

// Issue produces a token for subject valid from now until now+ttl.
// Claims carry whole seconds: the issue instant is truncated and the
// lifetime rounded up, so the token never expires before now+ttl.
func (c *Codec) Issue(subject string, now time.Time, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}
	if subject == "" {
		return "", ErrEmptySubject
	}

	issued := now.Truncate(time.Second)
	lifetime := ttl.Truncate(time.Second)
	if lifetime < ttl {
		lifetime += time.Second
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Verify checks the signature and expiry of token at instant now and returns
// its claims. Any failure is reported as ErrTokenInvalid or ErrTokenExpired.
func (c *Codec) Verify(tokenString string, now time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is checked below against the caller's clock.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}
	// Compared at the precision the claims were written with
	if now.Truncate(time.Second).After(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// Subject verifies token and returns only its subject
func (c *Codec) Subject(tokenString string, now time.Time) (string, error) {
	claims, err := c.Verify(tokenString, now)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
