package http

import (
	"net/http"

	"github.com/brandu/auth/internal/auth/cache"
	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
)

type SignUpHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Sign up
//	@Description	Create a local account and send the email verification code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignUpRequest	true	"New account"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Username or email already taken"
//	@Router			/api/v1/auth/sign-up [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, r, err)
		return
	}

	u, err := h.Auth.SignUp(r.Context(), service.SignUpParams{
		Username: req.Username,
		Password: req.Password,
		Nickname: req.Nickname,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newUserResponse(u))
}

type ConfirmHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Confirm a challenge code
//	@Description	Redeem an emailed verification code. type selects the flow:
//	@Description	"sign-up" marks the account's email verified.
//	@Tags			Auth
//	@Produce		json
//	@Param			type	query		string	true	"Challenge purpose (sign-up or find-password)"
//	@Param			email	query		string	true	"Email the code was sent to"
//	@Param			code	query		string	true	"6-digit code"
//	@Success		200		{object}	map[string]bool	"verified"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"No outstanding challenge"
//	@Router			/api/v1/auth/confirm [get].
func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	purpose, ok := parsePurpose(q.Get("type"))
	if !ok {
		writeError(w, r, domain.ErrInvalidInput.WithMessage("unknown challenge type"))
		return
	}
	email, code := q.Get("email"), q.Get("code")
	if email == "" || code == "" {
		writeError(w, r, domain.ErrInvalidInput.WithMessage("email and code are required"))
		return
	}

	verified, err := h.Auth.Confirm(r.Context(), purpose, email, code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"verified": verified})
}

type ResendEmailHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Resend verification email
//	@Description	Send a fresh sign-up verification code. Unknown addresses
//	@Description	are accepted silently.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ResendEmailRequest	true	"Target address"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		429	{object}	ErrorResponse	"A code is already outstanding"
//	@Router			/api/v1/auth/resend-email [post].
func (h *ResendEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ResendEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, r, err)
		return
	}

	if err := h.Auth.ResendEmail(r.Context(), cache.PurposeSignUp, req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parsePurpose(s string) (cache.Purpose, bool) {
	switch s {
	case string(cache.PurposeSignUp):
		return cache.PurposeSignUp, true
	case string(cache.PurposeFindPassword):
		return cache.PurposeFindPassword, true
	default:
		return "", false
	}
}
