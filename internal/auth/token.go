package auth

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token is expired")
)

// ClaimExpiry is set by Issue and checked by Validate.
const ClaimExpiry = "exp"

var signingMethod = jwt.SigningMethodHS256

// TokenIssuer signs and validates stateless HS256 access tokens.
// Both the key and the TTL are fixed at construction.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

func NewTokenIssuer(key []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: key, ttl: ttl}
}

func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs claims plus an "exp" of now+TTL. "exp" is whole seconds, so
// it is rounded up and a token never lives shorter than the TTL. The
// caller's map is not modified.
func (t *TokenIssuer) Issue(claims map[string]any, now time.Time) (string, error) {
	mc := jwt.MapClaims{}
	maps.Copy(mc, claims)
	mc[ClaimExpiry] = expiryUnix(now.Add(t.ttl))

	signed, err := jwt.NewWithClaims(signingMethod, mc).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func expiryUnix(exp time.Time) int64 {
	secs := exp.Unix()
	if exp.Nanosecond() > 0 {
		secs++
	}
	return secs
}

// Validate checks the signature and that now is before the "exp" claim.
// Expiry is judged only against now, never against the wall clock.
func (t *TokenIssuer) Validate(raw string, now time.Time) (map[string]any, error) {
	token, err := jwt.Parse(raw,
		func(*jwt.Token) (any, error) { return t.key, nil },
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}
