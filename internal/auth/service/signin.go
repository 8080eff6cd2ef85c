package service

import (
	"context"
	"errors"

	"github.com/brandu/auth/internal/auth/cache"
	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/pkg/cryptox"
	"github.com/brandu/auth/pkg/jwtx"
	"github.com/brandu/auth/pkg/slogx"
)

// SignIn verifies credentials and issues a fresh token pair. Unknown username
// and wrong password both map to ErrUserNotMatch so the response does not
// reveal which half was wrong. An unverified account is reported differently
// depending on whether its challenge is still outstanding: the user either
// needs to check their inbox or request a new code.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (jwtx.TokenPair, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.RecordSignInFailure("unknown_user")
			return jwtx.TokenPair{}, domain.ErrUserNotMatch
		}
		return jwtx.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			s.Metrics.RecordSignInFailure("bad_password")
			return jwtx.TokenPair{}, domain.ErrUserNotMatch
		}
		return jwtx.TokenPair{}, err
	}

	if u.Locked {
		s.Metrics.RecordSignInFailure("locked")
		log.Warn("sign-in attempt on locked account", "username", username)
		return jwtx.TokenPair{}, domain.ErrUserLocked
	}

	if !u.EmailVerified {
		outstanding, err := s.Cache.HasChallenge(ctx, cache.PurposeSignUp, u.Email)
		if err != nil {
			return jwtx.TokenPair{}, err
		}
		s.Metrics.RecordSignInFailure("unverified")
		if outstanding {
			return jwtx.TokenPair{}, domain.ErrUserEmailNotVerified
		}
		return jwtx.TokenPair{}, domain.ErrVerificationExpired
	}

	pair, err := s.issueFor(u, "sign_in")
	if err != nil {
		return jwtx.TokenPair{}, err
	}
	s.Metrics.RecordSignInSuccess()
	return pair, nil
}

// SignOut records the presented pair on the deny-list for the remainder of
// its refresh lifetime. A second sign-out with an already-revoked pair fails
// with ErrAlreadySignedOut.
func (s *AuthService) SignOut(ctx context.Context, subject, accessToken, refreshToken string) error {
	revoked, err := s.Cache.IsRevoked(ctx, subject, accessToken, refreshToken)
	if err != nil {
		s.Metrics.RecordCacheError()
		return err
	}
	if revoked {
		return domain.ErrAlreadySignedOut
	}

	if err := s.Cache.RecordLogout(ctx, subject, accessToken, refreshToken, s.Codec.RefreshTTL()); err != nil {
		s.Metrics.RecordCacheError()
		return err
	}
	s.Metrics.RecordSignOut()
	return nil
}

// Refresh exchanges a live refresh token for a fresh pair carrying the user's
// current role. A refresh token from a signed-out session is refused, and a
// deny-list lookup failure is treated the same way.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (jwtx.TokenPair, error) {
	claims, err := s.Codec.Parse(refreshToken)
	if err != nil {
		return jwtx.TokenPair{}, domain.ErrInvalidToken
	}

	revoked, err := s.Cache.IsRevoked(ctx, claims.Subject, "", refreshToken)
	if err != nil {
		s.Metrics.RecordCacheError()
		revoked = true
	}
	if revoked {
		s.Metrics.RecordRevocationHit()
		return jwtx.TokenPair{}, domain.ErrAlreadySignedOut
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return jwtx.TokenPair{}, domain.ErrUserNotFound
		}
		return jwtx.TokenPair{}, err
	}
	if u.Locked {
		return jwtx.TokenPair{}, domain.ErrUserLocked
	}

	return s.issueFor(u, "refresh")
}
