// Package service orchestrates the authentication flows: sign-up with email
// verification, sign-in, token refresh, sign-out revocation, password
// recovery, and OAuth login.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/brandu/auth/internal/auth/cache"
	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/internal/auth/mail"
	"github.com/brandu/auth/internal/auth/metrics"
	"github.com/brandu/auth/internal/auth/store"
	"github.com/brandu/auth/pkg/jwtx"
	"github.com/brandu/auth/pkg/slogx"
)

type AuthService struct {
	Store   store.Store
	Cache   *cache.Cache
	Codec   *jwtx.Codec
	Mailer  mail.Mailer
	Metrics *metrics.Collector
}

// issueFor signs a fresh token pair for the user's current role.
func (s *AuthService) issueFor(u domain.User, flow string) (jwtx.TokenPair, error) {
	pair, err := s.Codec.Issue(u.Username, u.Authorities())
	if err != nil {
		return jwtx.TokenPair{}, err
	}
	s.Metrics.RecordTokensIssued(flow)
	return pair, nil
}

// sendChallenge stores a new challenge code for (purpose, email) and mails it.
// The SETNX in the cache enforces at most one outstanding challenge, which
// doubles as the resend throttle. Delivery happens on a detached goroutine:
// the user can always request a resend once the code expires.
func (s *AuthService) sendChallenge(ctx context.Context, purpose cache.Purpose, email, code string) error {
	if err := s.Cache.PutChallenge(ctx, purpose, email, code); err != nil {
		if errors.Is(err, cache.ErrChallengeOutstanding) {
			return domain.ErrEmailSendThrottled
		}
		return err
	}

	log := slogx.FromContext(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		switch purpose {
		case cache.PurposeSignUp:
			err = s.Mailer.SendSignUpCode(sendCtx, email, code)
		case cache.PurposeFindPassword:
			err = s.Mailer.SendPasswordResetCode(sendCtx, email, code)
		}
		if err != nil {
			log.Error("challenge email delivery failed", "purpose", string(purpose), "err", err)
			return
		}
		s.Metrics.RecordChallengeSent(string(purpose))
	}()

	return nil
}
