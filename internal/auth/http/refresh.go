package http

import (
	"net/http"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
)

type RefreshHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Refresh tokens
//	@Description	Exchange the refresh token cookie for a fresh pair. A token
//	@Description	from a signed-out session is refused.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	TokenResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	refresh, ok := refreshTokenFromRequest(r)
	if !ok {
		writeError(w, r, domain.ErrInvalidToken.WithMessage("missing refresh token cookie"))
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), refresh)
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
