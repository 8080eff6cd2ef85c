package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesAcrossWithMessage(t *testing.T) {
	t.Parallel()

	specific := ErrUserEmailNotVerified.WithMessage("the verification window expired")
	require.ErrorIs(t, specific, ErrUserEmailNotVerified)
	require.NotErrorIs(t, specific, ErrUserLocked)

	// Wrapping keeps the match.
	wrapped := fmt.Errorf("sign-in failed: %w", specific)
	require.ErrorIs(t, wrapped, ErrUserEmailNotVerified)
}

func TestErrorCodesAreUnique(t *testing.T) {
	t.Parallel()

	all := []*Error{
		ErrInvalidInput, ErrInvalidToken, ErrAccessDenied, ErrUnsupportedProvider,
		ErrUserNotFound, ErrUserNotMatch, ErrUserLocked, ErrUserEmailNotVerified,
		ErrVerificationExpired, ErrUserAlreadyExists, ErrAlreadySignedOut,
		ErrEmailSendThrottled, ErrProviderClaim, ErrChallengeNotFound,
	}

	seen := map[int]bool{}
	for _, e := range all {
		require.False(t, seen[e.Code], "duplicate code %d", e.Code)
		seen[e.Code] = true
		require.NotZero(t, e.Status)
		require.NotEmpty(t, e.Message)
	}
}

func TestErrorAsDomainError(t *testing.T) {
	t.Parallel()

	var de *Error
	err := fmt.Errorf("boundary: %w", ErrUserLocked)
	require.True(t, errors.As(err, &de))
	require.Equal(t, 2005, de.Code)
	require.Equal(t, 403, de.Status)
}
