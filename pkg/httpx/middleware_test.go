package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandu/auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fakeRevocations struct {
	revoked bool
	err     error
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, subject, accessToken, refreshToken string) (bool, error) {
	return f.revoked, f.err
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.NewCodec([]byte("test-secret-key"), 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	return codec
}

func captureHandler(gotPrincipal *Principal, gotOK *bool, gotReason *error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		*gotPrincipal, *gotOK = p, ok
		*gotReason = AuthErrorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateNoCredentials(t *testing.T) {
	var (
		p      Principal
		ok     bool
		reason error
	)
	h := Authenticate(newTestCodec(t), &fakeRevocations{})(captureHandler(&p, &ok, &reason))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, ok)
	require.NoError(t, reason)
}

func TestAuthenticateValidToken(t *testing.T) {
	codec := newTestCodec(t)
	pair, err := codec.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	var (
		p      Principal
		ok     bool
		reason error
	)
	h := Authenticate(codec, &fakeRevocations{})(captureHandler(&p, &ok, &reason))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, ok)
	require.Equal(t, "alice", p.Subject)
	require.Equal(t, []string{"ROLE_USER"}, p.Authorities)
	require.NoError(t, reason)
}

func TestAuthenticateMalformedToken(t *testing.T) {
	var (
		p      Principal
		ok     bool
		reason error
	)
	h := Authenticate(newTestCodec(t), &fakeRevocations{})(captureHandler(&p, &ok, &reason))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, ok)
	require.ErrorIs(t, reason, ErrTokenInvalid)
}

func TestAuthenticateRevokedToken(t *testing.T) {
	codec := newTestCodec(t)
	pair, err := codec.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	var (
		p      Principal
		ok     bool
		reason error
	)
	h := Authenticate(codec, &fakeRevocations{revoked: true})(captureHandler(&p, &ok, &reason))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.False(t, ok)
	require.ErrorIs(t, reason, ErrTokenRevoked)
}

func TestAuthenticateDenyListUnavailableFailsClosed(t *testing.T) {
	codec := newTestCodec(t)
	pair, err := codec.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	var (
		p      Principal
		ok     bool
		reason error
	)
	checker := &fakeRevocations{err: errors.New("connection refused")}
	h := Authenticate(codec, checker)(captureHandler(&p, &ok, &reason))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.False(t, ok)
	require.ErrorIs(t, reason, ErrTokenRevoked)
}

func denyRecorder(status *int, reason *error) DenyHandler {
	return func(w http.ResponseWriter, r *http.Request, s int, err error) {
		*status, *reason = s, err
		w.WriteHeader(s)
	}
}

func TestRequireAuth(t *testing.T) {
	var (
		status int
		reason error
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RequireAuth(denyRecorder(&status, &reason))(next)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithAuthError(req.Context(), ErrTokenInvalid))
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, http.StatusUnauthorized, status)
	require.ErrorIs(t, reason, ErrTokenInvalid)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithPrincipal(req.Context(), Principal{Subject: "alice"}))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthority(t *testing.T) {
	var (
		status int
		reason error
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := RequireAuthority("ROLE_ADMIN", denyRecorder(&status, &reason))(next)

	// Unauthenticated callers get 401, not 403.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithPrincipal(req.Context(), Principal{
		Subject:     "alice",
		Authorities: []string{"ROLE_USER"},
	}))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, reason)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextWithPrincipal(req.Context(), Principal{
		Subject:     "root",
		Authorities: []string{"ROLE_ADMIN"},
	}))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
