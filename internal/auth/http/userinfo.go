package http

import (
	"net/http"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
)

type UserInfoHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Get the authenticated user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/v1/users/me [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		writeError(w, r, domain.ErrInvalidToken)
		return
	}

	u, err := h.Auth.UserByUsername(ctx, p.Subject)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(u))
}
