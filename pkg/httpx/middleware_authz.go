package httpx

import "net/http"

// DenyHandler writes the response for a rejected request. The reason is the
// recorded authentication error, or nil when no credentials were presented
// at all (401) or the principal lacked an authority (403).
type DenyHandler func(w http.ResponseWriter, r *http.Request, status int, reason error)

// RequireAuth rejects requests that did not authenticate, with the reason the
// authentication middleware recorded.
func RequireAuth(deny DenyHandler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				deny(w, r, http.StatusUnauthorized, AuthErrorFromContext(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthority rejects authenticated callers that lack the given
// authority. Unauthenticated callers still get 401, not 403.
func RequireAuthority(authority string, deny DenyHandler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				deny(w, r, http.StatusUnauthorized, AuthErrorFromContext(r.Context()))
				return
			}
			if !p.HasAuthority(authority) {
				deny(w, r, http.StatusForbidden, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
