package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/service"
	"github.com/brandu/auth/pkg/httpx"
)

type OAuthHandler struct {
	Auth *service.AuthService

	// RedirectURL, when set, turns the response into a 302 carrying the
	// tokens as query parameters for a browser-based client.
	RedirectURL string
}

// ServeHTTP godoc
//
//	@Summary		OAuth login
//	@Description	Exchange a provider claim payload for a token pair. The
//	@Description	first login for an identity creates the account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			provider	path		string			true	"google, github, kakao, or naver"
//	@Param			request		body		map[string]any	true	"Raw provider claim attributes"
//	@Success		200			{object}	TokenResponse
//	@Failure		400			{object}	ErrorResponse	"Unsupported provider"
//	@Failure		500			{object}	ErrorResponse	"Provider response missing a required claim"
//	@Router			/api/v1/auth/oauth2/{provider} [post].
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	provider := domain.Provider(strings.ToUpper(r.PathValue("provider")))

	var attrs map[string]any
	if err := decodeJSON(r, &attrs); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.Auth.OAuthLogin(r.Context(), provider, attrs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setRefreshCookie(w, pair.RefreshToken, h.Auth.Codec.RefreshTTL())

	if h.RedirectURL != "" {
		q := url.Values{}
		q.Set("accessToken", pair.AccessToken)
		q.Set("refreshToken", pair.RefreshToken)
		http.Redirect(w, r, h.RedirectURL+"?"+q.Encode(), http.StatusFound)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
