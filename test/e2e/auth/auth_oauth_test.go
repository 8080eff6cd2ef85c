package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandu/auth/pkg/authsdk"
)

// TestOAuthLoginGoogle verifies a Google profile creates a verified account
// on first login and reuses it on the next.
func TestOAuthLoginGoogle(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)
	ctx := t.Context()

	attrs := map[string]any{
		"sub":     "108234567890",
		"email":   "kay@example.com",
		"name":    "Kay",
		"picture": "https://lh3.example.com/kay.png",
	}

	session, err := client.OAuthLogin(ctx, "google", attrs)
	require.NoError(t, err)
	assertTokenPair(t, session)

	user, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "kay@example.com", user.Username)
	require.Equal(t, "GOOGLE", user.Provider)
	require.True(t, user.EmailVerified, "Provider-asserted emails count as verified")
	require.Equal(t, "https://lh3.example.com/kay.png", user.AvatarURL)

	again, err := client.OAuthLogin(ctx, "google", attrs)
	require.NoError(t, err)

	sameUser, err := again.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, sameUser.ID, "Repeat logins should reuse the account")
}

// TestOAuthLoginKakao verifies the nested Kakao payload shape is accepted
// and a placeholder email is derived when the profile has none.
func TestOAuthLoginKakao(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)
	ctx := t.Context()

	session, err := client.OAuthLogin(ctx, "kakao", map[string]any{
		"id": 910230,
		"properties": map[string]any{
			"nickname": "Leo",
		},
	})
	require.NoError(t, err)

	user, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "KAKAO", user.Provider)
	require.Equal(t, "Leo@kakao.com", user.Email)
}

// TestOAuthUnsupportedProvider verifies unknown provider segments are
// rejected.
func TestOAuthUnsupportedProvider(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)

	_, err := client.OAuthLogin(t.Context(), "facebook", map[string]any{"id": "1"})
	assertServiceCode(t, err, authsdk.CodeUnsupportedProvider, "unknown provider")
}

// TestOAuthMissingClaim verifies a payload without the provider's id claim
// is rejected.
func TestOAuthMissingClaim(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)

	_, err := client.OAuthLogin(t.Context(), "google", map[string]any{"email": "x@example.com"})
	assertServiceCode(t, err, authsdk.CodeProviderClaim, "missing sub claim")
}
