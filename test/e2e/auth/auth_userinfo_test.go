package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandu/auth/pkg/authsdk"
)

// TestUserInfo verifies the signed-in user can fetch their own profile.
func TestUserInfo(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)

	session := stack.performSignIn(t, client, "frank", "frank@example.com")

	user, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "frank", user.Username)
	require.Equal(t, "frank@example.com", user.Email)
	require.True(t, user.EmailVerified)
	require.Equal(t, "USER", user.Role)
}

// TestUserInfoRequiresToken verifies the profile endpoint rejects requests
// without a valid access token.
func TestUserInfoRequiresToken(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)

	anonymous := client.NewSessionFromTokens("", "")
	_, err := anonymous.Me(t.Context())
	assertServiceCode(t, err, authsdk.CodeInvalidToken, "profile without a token")

	garbage := client.NewSessionFromTokens("not-a-jwt", "")
	_, err = garbage.Me(t.Context())
	assertServiceCode(t, err, authsdk.CodeInvalidToken, "profile with a malformed token")
}
