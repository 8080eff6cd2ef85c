package http

import (
	"net/http"

	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
)

type SignInHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Sign in
//	@Description	Verify username and password and issue an access/refresh token pair.
//	@Description	The refresh token is additionally set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignInRequest	true	"Credentials"
//	@Success		200		{object}	TokenResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse	"Credentials do not match"
//	@Failure		403		{object}	ErrorResponse	"Account locked or email unverified"
//	@Router			/api/v1/auth/sign-in [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, r, err)
		return
	}

	pair, err := h.Auth.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setRefreshCookie(w, pair.RefreshToken, h.Auth.Codec.RefreshTTL())
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
