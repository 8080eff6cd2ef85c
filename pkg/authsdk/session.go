package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Session represents an authenticated session holding the issued token pair.
// Refresh replaces both tokens in place; the old pair stays valid until it
// expires or the session signs out.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, tokens *TokenResponse) *Session {
	return &Session{
		client:       client,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
	}
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Me fetches the profile of the signed-in user.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/users/me", nil, false)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// Refresh exchanges the refresh token for a fresh token pair and stores it
// on the session.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	hasRefresh := s.refreshToken != ""
	s.mu.RUnlock()

	if !hasRefresh {
		return fmt.Errorf("no refresh token available")
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, true)
	if err != nil {
		return err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.mu.Unlock()

	return nil
}

// SignOut revokes the session's token pair. The tokens stay stored on the
// session so callers can verify that the service now rejects them.
func (s *Session) SignOut(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/auth/sign-out", nil, true)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
