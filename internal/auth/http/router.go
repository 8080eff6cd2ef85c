// Package http wires the authentication flows onto the HTTP surface. All
// handlers are thin: decode, validate, call the service, serialize.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/brandu/auth/internal/auth/metrics"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
	"github.com/brandu/auth/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/brandu/auth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	auth             *service.AuthService
	gatherer         prometheus.Gatherer
	oauthRedirectURL string
	buildVersion     string
	startTime        time.Time
	logger           *slog.Logger
}

func NewRouter(
	auth *service.AuthService,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
	buildVersion, oauthRedirectURL string,
) *Router {
	r := &Router{
		Mux:              http.NewServeMux(),
		auth:             auth,
		gatherer:         gatherer,
		oauthRedirectURL: oauthRedirectURL,
		buildVersion:     buildVersion,
		startTime:        time.Now(),
		logger:           logger,
	}

	// Authentication runs globally and never rejects; protected routes add
	// RequireAuth below.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metricsMiddleware(auth.Metrics),
		httpx.Authenticate(auth.Codec, auth.Cache),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Brandu Auth Service API
//	@version		0.1.0
//	@description	Authentication and session lifecycle service: signed access/refresh
//	@description	token pairs, Redis-backed sign-out revocation, email verification
//	@description	challenges, and multi-provider OAuth login.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/v1/auth/sign-in", &SignInHandler{Auth: r.auth})
	r.Mux.Handle("POST /api/v1/auth/sign-up", &SignUpHandler{Auth: r.auth})
	r.Mux.Handle("POST /api/v1/auth/refresh", &RefreshHandler{Auth: r.auth})
	r.Mux.Handle("GET /api/v1/auth/confirm", &ConfirmHandler{Auth: r.auth})
	r.Mux.Handle("POST /api/v1/auth/resend-email", &ResendEmailHandler{Auth: r.auth})
	r.Mux.Handle("POST /api/v1/auth/oauth2/{provider}", &OAuthHandler{
		Auth:        r.auth,
		RedirectURL: r.oauthRedirectURL,
	})

	passwords := &PasswordHandler{Auth: r.auth}
	r.Mux.Handle("POST /api/v1/auth/find-password", http.HandlerFunc(passwords.HandleFind))
	r.Mux.Handle("POST /api/v1/auth/reset-password", http.HandlerFunc(passwords.HandleReset))

	r.Mux.Handle("DELETE /api/v1/auth/sign-out",
		httpx.Chain(&SignOutHandler{Auth: r.auth},
			httpx.RequireAuth(denyAuth),
		),
	)
}

func (r *Router) registerUsers() {
	r.Mux.Handle("GET /api/v1/users/me",
		httpx.Chain(&UserInfoHandler{Auth: r.auth},
			httpx.RequireAuth(denyAuth),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.auth.Store, r.auth.Cache))
	r.Mux.Handle("GET /metrics", metrics.Handler(r.gatherer))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(collector *metrics.Collector) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			collector.RecordHTTPStatus(rec.status)
			collector.RecordRequestLatency(time.Since(start))
		})
	}
}
