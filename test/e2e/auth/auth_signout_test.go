package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brandu/auth/pkg/authsdk"
)

// TestSignOutRevokesPair verifies sign-out invalidates the presented token
// pair as a unit.
func TestSignOutRevokesPair(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)
	ctx := t.Context()

	session := stack.performSignIn(t, client, "heidi", "heidi@example.com")

	require.NoError(t, session.SignOut(ctx))

	// The revoked access token no longer reaches protected endpoints.
	_, err := session.Me(ctx)
	assertServiceCode(t, err, authsdk.CodeAlreadySignedOut, "profile with a revoked token")

	// The revoked refresh token cannot mint a new pair.
	err = session.Refresh(ctx)
	assertServiceCode(t, err, authsdk.CodeAlreadySignedOut, "refresh with a revoked token")

	// Signing out twice with the same pair is reported, not silently absorbed.
	err = session.SignOut(ctx)
	assertServiceCode(t, err, authsdk.CodeAlreadySignedOut, "double sign-out")
}

// TestSignOutOnlyRevokesPresentedPair verifies a later token pair for the
// same user survives a sign-out of an earlier one.
func TestSignOutOnlyRevokesPresentedPair(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)
	ctx := t.Context()

	first := stack.performSignIn(t, client, "ivan", "ivan@example.com")

	second, err := client.SignIn(ctx, "ivan", defaultPassword)
	require.NoError(t, err)

	require.NoError(t, first.SignOut(ctx))

	_, err = second.Me(ctx)
	require.NoError(t, err, "The second session should survive the first one's sign-out")
}

// TestSignOutRequiresAuthentication verifies sign-out is a protected route.
func TestSignOutRequiresAuthentication(t *testing.T) {
	stack, cleanup := setupAuthStack(t)
	defer cleanup()

	client := authsdk.NewSDKClient(stack.BaseURL)

	anonymous := client.NewSessionFromTokens("", "")
	err := anonymous.SignOut(t.Context())
	assertServiceCode(t, err, authsdk.CodeInvalidToken, "sign-out without a token")
}
