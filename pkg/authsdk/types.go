package authsdk

// SignInRequest is the body for POST /api/v1/auth/sign-in.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRequest is the body for POST /api/v1/auth/sign-up.
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// ResendEmailRequest is the body for POST /api/v1/auth/resend-email.
type ResendEmailRequest struct {
	Email string `json:"email"`
}

// FindPasswordRequest is the body for POST /api/v1/auth/find-password.
type FindPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body for POST /api/v1/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// TokenResponse is the token pair issued by sign-in, refresh and OAuth login.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is a user profile as returned by the service.
type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Nickname      string `json:"nickname"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Provider      string `json:"provider"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// HealthChecks carries per-dependency results on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
