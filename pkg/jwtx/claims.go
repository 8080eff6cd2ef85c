package jwtx

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short access tokens, week-long refresh tokens.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// Claims are the payload carried by both tokens. Access tokens carry the
// subject and the comma-joined authority list; refresh tokens carry the
// subject only.
type Claims struct {
	jwt.RegisteredClaims

	// Authorities is a comma-joined list of granted authorities,
	// e.g. "ROLE_USER" or "ROLE_USER,ROLE_ADMIN".
	Authorities string `json:"authorities,omitempty"`
}

// AuthorityList splits the comma-joined authorities claim. Empty claim
// yields nil.
func (c Claims) AuthorityList() []string {
	if c.Authorities == "" {
		return nil
	}
	parts := strings.Split(c.Authorities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newAccessClaims(subject string, authorities []string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Authorities: strings.Join(authorities, ","),
	}
}

func newRefreshClaims(subject string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
