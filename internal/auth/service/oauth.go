package service

import (
	"context"
	"errors"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/identity"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/pkg/cryptox"
	"github.com/brandu/auth/pkg/idx"
	"github.com/brandu/auth/pkg/jwtx"
	"github.com/brandu/auth/pkg/slogx"
)

// OAuthLogin resolves a provider claim payload into a local account and
// issues a token pair. First login materializes the account; the provider
// already verified the email (or we synthesized a placeholder), so the
// account skips the challenge flow. The stored password hash is derived from
// a random secret nobody knows, which keeps local sign-in closed for these
// accounts.
func (s *AuthService) OAuthLogin(ctx context.Context, provider domain.Provider, attrs map[string]any) (jwtx.TokenPair, error) {
	claim, err := identity.Normalize(provider, attrs)
	if err != nil {
		return jwtx.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, claim.Email)
	switch {
	case err == nil:
		if u.Locked {
			return jwtx.TokenPair{}, domain.ErrUserLocked
		}
	case errors.Is(err, store.ErrNotFound):
		u, err = s.createFromClaim(ctx, claim)
		if err != nil {
			return jwtx.TokenPair{}, err
		}
	default:
		return jwtx.TokenPair{}, err
	}

	return s.issueFor(u, "oauth")
}

func (s *AuthService) createFromClaim(ctx context.Context, claim domain.IdentityClaim) (domain.User, error) {
	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.User{}, err
	}
	hash, err := cryptox.HashPassword(secret)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:            idx.New().String(),
		Username:      claim.Email,
		Nickname:      claim.DisplayName,
		Email:         claim.Email,
		PasswordHash:  hash,
		AvatarURL:     claim.AvatarURL,
		Provider:      claim.Provider,
		Role:          domain.RoleUser,
		EmailVerified: true,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent first login; use the winner's row.
			return s.Store.Users().GetUserByUsername(ctx, claim.Email)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("account created from provider claim",
		"provider", string(claim.Provider), "username", claim.Email)
	return u, nil
}
