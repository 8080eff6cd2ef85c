package http

import (
	"net/http"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
)

type SignOutHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Sign out
//	@Description	Revoke the presented token pair for the rest of its lifetime
//	@Description	and clear the refresh cookie.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		204
//	@Failure		401	{object}	ErrorResponse	"Missing, invalid, or already signed-out token"
//	@Router			/api/v1/auth/sign-out [delete].
func (h *SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		writeError(w, r, domain.ErrInvalidToken)
		return
	}

	refresh, _ := refreshTokenFromRequest(r)
	if err := h.Auth.SignOut(ctx, p.Subject, httpx.BearerFromContext(ctx), refresh); err != nil {
		writeError(w, r, err)
		return
	}

	clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
