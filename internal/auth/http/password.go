package http

import (
	"net/http"

	"github.com/brandu/auth/internal/auth/service"
)

type PasswordHandler struct {
	Auth *service.AuthService
}

// HandleFind godoc
//
//	@Summary		Start password recovery
//	@Description	Send a password reset code. Unknown addresses are accepted
//	@Description	silently.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	FindPasswordRequest	true	"Target address"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		429	{object}	ErrorResponse	"A code is already outstanding"
//	@Router			/api/v1/auth/find-password [post].
func (h *PasswordHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	var req FindPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, r, err)
		return
	}

	if err := h.Auth.FindPassword(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReset godoc
//
//	@Summary		Complete password recovery
//	@Description	Redeem the emailed reset code and set a new password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ResetPasswordRequest	true	"Code and new password"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse	"Wrong code"
//	@Failure		404	{object}	ErrorResponse	"No outstanding challenge"
//	@Router			/api/v1/auth/reset-password [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, r, err)
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
