package httpx

import "context"

type ctxKey string

const (
	ctxKeyPrincipal  ctxKey = "principal"
	ctxKeyAuthError  ctxKey = "auth_error"
	ctxKeyAuthBearer ctxKey = "auth_bearer"
)

// Principal is the authenticated caller attached to a request context after
// the access token has been verified against both signature and deny-list.
type Principal struct {
	Subject     string
	Authorities []string
}

// HasAuthority reports whether the principal carries the given authority.
func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}

func contextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// AuthErrorFromContext returns the reason authentication failed for this
// request, recorded by the authentication middleware. Empty when the request
// simply carried no credentials.
func AuthErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(ctxKeyAuthError).(error)
	return err
}

func contextWithAuthError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, ctxKeyAuthError, err)
}

// BearerFromContext returns the raw access token presented on this request.
// Only set when the token authenticated successfully.
func BearerFromContext(ctx context.Context) string {
	raw, _ := ctx.Value(ctxKeyAuthBearer).(string)
	return raw
}

func contextWithBearer(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, ctxKeyAuthBearer, raw)
}
