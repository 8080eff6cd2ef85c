// Package jwtx signs and verifies the service's HS256 token pairs. The codec
// is a pure function of the shared key and the clock; it performs no I/O and
// never blocks.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is the single failure surfaced to callers. Signature
	// mismatch, structural corruption, and expiry are wrapped into it so the
	// boundary never leaks which check failed; the diagnostic stays in the
	// wrapped error text for logs.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrConfig reports an unusable codec configuration.
	ErrConfig = errors.New("jwtx: invalid codec configuration")
)

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Codec issues and validates token pairs with a single shared HMAC-SHA256
// key. Header is the library default {"typ":"JWT","alg":"HS256"}.
type Codec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a codec. The key must be non-empty and both TTLs strictly
// positive; a zero access TTL would mint tokens whose expiry equals their
// issue time, so it is rejected here rather than at issue time.
func NewCodec(key []byte, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty signing key", ErrConfig)
	}
	if accessTTL <= 0 {
		return nil, fmt.Errorf("%w: access token TTL must be positive", ErrConfig)
	}
	if refreshTTL <= 0 {
		return nil, fmt.Errorf("%w: refresh token TTL must be positive", ErrConfig)
	}
	return &Codec{key: key, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// RefreshTTL reports the configured refresh token lifetime. The session
// cache uses it as the revocation record TTL.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Issue mints a token pair for subject at the current time.
func (c *Codec) Issue(subject string, authorities []string) (TokenPair, error) {
	return c.IssueAt(subject, authorities, time.Now())
}

// IssueAt mints a token pair at an explicit time. The access token carries
// {sub, authorities, iat, exp=now+accessTTL}; the refresh token carries
// {sub, iat, exp=now+refreshTTL}.
func (c *Codec) IssueAt(subject string, authorities []string, now time.Time) (TokenPair, error) {
	access, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		newAccessClaims(subject, authorities, c.accessTTL, now),
	).SignedString(c.key)
	if err != nil {
		return TokenPair{}, fmt.Errorf("jwtx: sign access token: %w", err)
	}

	refresh, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		newRefreshClaims(subject, c.refreshTTL, now),
	).SignedString(c.key)
	if err != nil {
		return TokenPair{}, fmt.Errorf("jwtx: sign refresh token: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Parse verifies signature and expiry and returns the claims. Every failure
// mode comes back as ErrInvalidToken with the underlying reason wrapped in.
func (c *Codec) Parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Validate reports whether raw is a well-formed, correctly signed,
// unexpired token.
func (c *Codec) Validate(raw string) bool {
	_, err := c.Parse(raw)
	return err == nil
}
