package jwtx

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testKey, 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	return c
}

func TestNewCodecRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := NewCodec(nil, time.Minute, time.Hour)
	require.ErrorIs(t, err, ErrConfig)

	_, err = NewCodec(testKey, 0, time.Hour)
	require.ErrorIs(t, err, ErrConfig)

	_, err = NewCodec(testKey, time.Minute, 0)
	require.ErrorIs(t, err, ErrConfig)
}

func TestIssueParseRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	pair, err := c.Issue("alice", []string{"ROLE_USER", "ROLE_ADMIN"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := c.Parse(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, claims.AuthorityList())

	// Refresh token carries subject only.
	claims, err = c.Parse(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Empty(t, claims.AuthorityList())
}

func TestTokenHeaderIsFixedHS256(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	pair, err := c.Issue("alice", nil)
	require.NoError(t, err)

	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)

	var header map[string]string
	require.NoError(t, json.Unmarshal(raw, &header))
	require.Equal(t, "JWT", header["typ"])
	require.Equal(t, "HS256", header["alg"])
}

func TestExpiryOffsetsAreApplied(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	now := time.Unix(1700000000, 0).UTC()
	pair, err := c.IssueAt("alice", nil, now)
	require.NoError(t, err)

	access, err := c.Parse(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, now.Add(30*time.Minute).Unix(), access.ExpiresAt.Unix())
	require.NotEqual(t, access.IssuedAt.Unix(), access.ExpiresAt.Unix())

	refresh, err := c.Parse(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, now.Add(14*24*time.Hour).Unix(), refresh.ExpiresAt.Unix())
}

func TestExpiredTokenFailsValidate(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	// Signed correctly but already expired.
	pair, err := c.IssueAt("alice", nil, time.Now().Add(-15*24*time.Hour))
	require.NoError(t, err)

	require.False(t, c.Validate(pair.AccessToken))
	_, err = c.Parse(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongKeyFailsValidate(t *testing.T) {
	t.Parallel()

	a := newTestCodec(t)
	b, err := NewCodec([]byte("another-key-entirely-0123456789a"), 30*time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := a.Issue("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	require.False(t, b.Validate(pair.AccessToken))
	_, err = b.Parse(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokenFailsValidate(t *testing.T) {
	t.Parallel()
	c := newTestCodec(t)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.@@@.###"} {
		require.False(t, c.Validate(raw), "token %q", raw)
	}
}
