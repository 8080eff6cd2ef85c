package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/brandu/auth/pkg/jwtx"
	"github.com/brandu/auth/pkg/slogx"
)

var (
	// ErrTokenInvalid is recorded when a presented bearer token fails
	// signature or expiry checks.
	ErrTokenInvalid = errors.New("httpx: invalid bearer token")

	// ErrTokenRevoked is recorded when a structurally valid token matches the
	// deny-list, or when the deny-list could not be consulted (fail closed).
	ErrTokenRevoked = errors.New("httpx: revoked bearer token")
)

// TokenParser verifies a raw token and returns its claims.
type TokenParser interface {
	Parse(raw string) (jwtx.Claims, error)
}

// RevocationChecker consults the sign-out deny-list. Empty token halves are
// ignored during matching.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, subject, accessToken, refreshToken string) (bool, error)
}

// Authenticate resolves the bearer token on each request into a Principal.
// It never rejects: requests without credentials, or with bad ones, continue
// unauthenticated with the failure reason recorded on the context. Rejection
// is the job of RequireAuth and RequireAuthority further down the chain, so
// public routes behind the same middleware stay reachable.
func Authenticate(parser TokenParser, revocations RevocationChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := parser.Parse(raw)
			if err != nil {
				log.Warn("bearer token rejected", "err", err)
				ctx = contextWithAuthError(ctx, ErrTokenInvalid)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			revoked, err := revocations.IsRevoked(ctx, claims.Subject, raw, "")
			if err != nil {
				// Deny-list unavailable: treat the token as revoked.
				log.Error("revocation lookup failed", "err", err)
				revoked = true
			}
			if revoked {
				ctx = contextWithAuthError(ctx, ErrTokenRevoked)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = contextWithPrincipal(ctx, Principal{
				Subject:     claims.Subject,
				Authorities: claims.AuthorityList(),
			})
			ctx = contextWithBearer(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
