package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brandu/auth/internal/auth/cache"
	"github.com/brandu/auth/internal/auth/metrics"
	"github.com/brandu/auth/internal/auth/service"
	sqlitestore "github.com/brandu/auth/internal/auth/store/drivers/sqlite"
	"github.com/brandu/auth/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *recordingMailer) SendSignUpCode(ctx context.Context, to, code string) error {
	return m.record(to, code)
}

func (m *recordingMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	return m.record(to, code)
}

func (m *recordingMailer) record(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

type routerEnv struct {
	server *httptest.Server
	svc    *service.AuthService
	mailer *recordingMailer
}

func newRouterEnv(t *testing.T, oauthRedirect string) *routerEnv {
	t.Helper()

	st, err := sqlitestore.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mr := miniredis.RunT(t)
	c := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })

	codec, err := jwtx.NewCodec([]byte("router-test-key"), 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	mailer := &recordingMailer{codes: map[string]string{}}
	svc := &service.AuthService{
		Store:   st,
		Cache:   c,
		Codec:   codec,
		Mailer:  mailer,
		Metrics: metrics.NewCollector(reg),
	}

	router := NewRouter(svc, reg, slog.New(slog.NewTextHandler(io.Discard, nil)), "test", oauthRedirect)
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &routerEnv{server: server, svc: svc, mailer: mailer}
}

func (env *routerEnv) do(t *testing.T, method, path, bearer string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, env.server.URL+path, buf)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// signUpAndConfirm runs the whole registration flow over HTTP and returns a
// signed-in token pair.
func signUpAndConfirm(t *testing.T, env *routerEnv) TokenResponse {
	t.Helper()

	resp := env.do(t, http.MethodPost, "/api/v1/auth/sign-up", "", SignUpRequest{
		Username: "alice",
		Password: "s3cret-password",
		Nickname: "Alice",
		Email:    "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	code, err := env.svc.Cache.GetChallenge(context.Background(), cache.PurposeSignUp, "alice@example.com")
	require.NoError(t, err)

	resp = env.do(t, http.MethodGet,
		"/api/v1/auth/confirm?type=sign-up&email=alice%40example.com&code="+code, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/sign-in", "", SignInRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == refreshCookieName {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie)
	require.True(t, refreshCookie.HttpOnly)

	return decodeBody[TokenResponse](t, resp)
}

func TestSignUpSignInFlow(t *testing.T) {
	env := newRouterEnv(t, "")
	pair := signUpAndConfirm(t, env)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestSignInValidation(t *testing.T) {
	env := newRouterEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", "", SignInRequest{Username: "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, 1000, body.Code)
}

func TestSignInWrongPassword(t *testing.T) {
	env := newRouterEnv(t, "")
	signUpAndConfirm(t, env)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", "", SignInRequest{
		Username: "alice",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, 2004, body.Code)
}

func TestUserInfo(t *testing.T) {
	env := newRouterEnv(t, "")
	pair := signUpAndConfirm(t, env)

	resp := env.do(t, http.MethodGet, "/api/v1/users/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[UserResponse](t, resp)
	require.Equal(t, "alice", body.Username)
	require.True(t, body.EmailVerified)

	resp = env.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errBody := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, 2000, errBody.Code)
}

func TestSignOutRevokesAccess(t *testing.T) {
	env := newRouterEnv(t, "")
	pair := signUpAndConfirm(t, env)

	resp := env.do(t, http.MethodDelete, "/api/v1/auth/sign-out", pair.AccessToken, nil,
		&http.Cookie{Name: refreshCookieName, Value: pair.RefreshToken})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Cookie cleared.
	for _, c := range resp.Cookies() {
		if c.Name == refreshCookieName {
			require.Empty(t, c.Value)
			require.True(t, c.MaxAge < 0)
		}
	}

	// The revoked access token no longer authenticates.
	resp = env.do(t, http.MethodGet, "/api/v1/users/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, 2009, body.Code)
}

func TestRefresh(t *testing.T) {
	env := newRouterEnv(t, "")
	pair := signUpAndConfirm(t, env)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil,
		&http.Cookie{Name: refreshCookieName, Value: pair.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fresh := decodeBody[TokenResponse](t, resp)
	require.NotEmpty(t, fresh.AccessToken)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConfirmUnknownType(t *testing.T) {
	env := newRouterEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/v1/auth/confirm?type=bogus&email=a%40b.c&code=123456", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOAuthLoginJSON(t *testing.T) {
	env := newRouterEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/v1/auth/oauth2/google", "", map[string]any{
		"sub":   "108255312",
		"name":  "Alice",
		"email": "alice@gmail.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := decodeBody[TokenResponse](t, resp)

	me := env.do(t, http.MethodGet, "/api/v1/users/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, me.StatusCode)
	body := decodeBody[UserResponse](t, me)
	require.Equal(t, "GOOGLE", body.Provider)
}

func TestOAuthLoginRedirect(t *testing.T) {
	env := newRouterEnv(t, "https://app.example.com/oauth/callback")

	client := env.server.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp := env.do(t, http.MethodPost, "/api/v1/auth/oauth2/google", "", map[string]any{
		"sub":   "108255312",
		"name":  "Alice",
		"email": "alice@gmail.com",
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := resp.Location()
	require.NoError(t, err)
	require.Equal(t, "app.example.com", loc.Host)
	require.NotEmpty(t, loc.Query().Get("accessToken"))
}

func TestOAuthUnsupportedProvider(t *testing.T) {
	env := newRouterEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/v1/auth/oauth2/facebook", "", map[string]any{"id": "1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[ErrorResponse](t, resp)
	require.Equal(t, 2002, body.Code)
}

func TestHealthEndpoints(t *testing.T) {
	env := newRouterEnv(t, "")

	resp := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[HealthResponse](t, resp)
	require.Equal(t, "ok", body.Status)

	resp = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
