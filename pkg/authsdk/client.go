package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the authentication service.
// It provides access to unauthenticated operations and can create
// authenticated Sessions via SignIn or OAuthLogin.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignIn authenticates a user with username and password and returns an
// authenticated session.
func (c *SDKClient) SignIn(ctx context.Context, username, password string) (*Session, error) {
	body, err := jsonBody(SignInRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/sign-in", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tokens), nil
}

// OAuthLogin exchanges provider profile attributes for a session. The
// provider segment is one of GOOGLE, GITHUB, KAKAO or NAVER and the attrs
// map holds the claims as the provider returned them.
func (c *SDKClient) OAuthLogin(ctx context.Context, provider string, attrs map[string]any) (*Session, error) {
	body, err := jsonBody(attrs)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/oauth2/"+provider, body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &tokens), nil
}

// NewSessionFromTokens creates an authenticated session from existing tokens.
// This is useful when tokens from a previous authentication were stored
// elsewhere (e.g. a database or another system).
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}
