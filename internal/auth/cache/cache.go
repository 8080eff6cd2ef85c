// Package cache is the Redis-backed session revocation store and email
// challenge store. Revocation is a deny-list: only the token pair presented
// at sign-out is recorded, keyed by subject, and expires with the refresh
// token lifetime. Absence of a record means a token is live, which keeps the
// common path to a single fast lookup and logout O(1) regardless of how many
// sessions a user has had. Do not invert this into an allow-list; that
// changes the revocation latency characteristics.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ChallengeTTL bounds how long an email challenge code stays redeemable.
const ChallengeTTL = 5 * time.Minute

var (
	// ErrChallengeNotFound reports a missing or already-consumed challenge.
	ErrChallengeNotFound = errors.New("cache: challenge not found")

	// ErrChallengeOutstanding reports that a challenge already exists for
	// the (purpose, email) pair and has not expired yet.
	ErrChallengeOutstanding = errors.New("cache: challenge already outstanding")

	// ErrUnknownPurpose reports a purpose outside the known set.
	ErrUnknownPurpose = errors.New("cache: unknown challenge purpose")
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int

	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Cache wraps a Redis client. All operations are single atomic commands (or
// one transactional pipeline), so callers need no additional locking;
// concurrent sign-outs resolve last-writer-wins.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis with the given options.
func New(opts Options) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
		ReadTimeout: opts.ReadTimeout,
	}))
}

// NewWithClient wraps an existing client. Used by tests (miniredis) and by
// callers that manage the client lifecycle themselves.
func NewWithClient(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Close() error { return c.rdb.Close() }

// Ping verifies the Redis connection; used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// RecordLogout upserts the revocation record for subject with the presented
// token pair. ttl should be the refresh token lifetime so the record
// outlives every token it denies.
func (c *Cache) RecordLogout(ctx context.Context, subject, accessToken, refreshToken string, ttl time.Duration) error {
	key := authenticationKey(subject)

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]string{
			"userId":       subject,
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		})
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache: record logout for %q: %w", subject, err)
	}
	return nil
}

// IsRevoked reports whether the presented pair matches the recorded
// signed-out pair for subject. No record means live. Either half matching is
// enough: the pair was invalidated as a unit at sign-out. Errors must be
// treated as revoked by callers (fail closed).
func (c *Cache) IsRevoked(ctx context.Context, subject, accessToken, refreshToken string) (bool, error) {
	vals, err := c.rdb.HGetAll(ctx, authenticationKey(subject)).Result()
	if err != nil {
		return false, fmt.Errorf("cache: revocation lookup for %q: %w", subject, err)
	}
	if len(vals) == 0 {
		return false, nil
	}

	if accessToken != "" && vals["accessToken"] == accessToken {
		return true, nil
	}
	if refreshToken != "" && vals["refreshToken"] == refreshToken {
		return true, nil
	}
	return false, nil
}

// PutChallenge stores a challenge code for (purpose, email). SETNX keeps at
// most one outstanding challenge per pair: a second request while one is
// pending fails with ErrChallengeOutstanding instead of overwriting, so an
// old emailed code can never be silently superseded while still valid.
func (c *Cache) PutChallenge(ctx context.Context, purpose Purpose, email, code string) error {
	key, ok := purpose.challengeKey(email)
	if !ok {
		return ErrUnknownPurpose
	}

	set, err := c.rdb.SetNX(ctx, key, code, ChallengeTTL).Result()
	if err != nil {
		return fmt.Errorf("cache: store challenge for %q: %w", email, err)
	}
	if !set {
		return ErrChallengeOutstanding
	}
	return nil
}

// GetChallenge returns the outstanding code for (purpose, email).
func (c *Cache) GetChallenge(ctx context.Context, purpose Purpose, email string) (string, error) {
	key, ok := purpose.challengeKey(email)
	if !ok {
		return "", ErrUnknownPurpose
	}

	code, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrChallengeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("cache: load challenge for %q: %w", email, err)
	}
	return code, nil
}

// DeleteChallenge consumes the challenge. Deleting an absent key is not an
// error; confirmation idempotency is enforced by GetChallenge.
func (c *Cache) DeleteChallenge(ctx context.Context, purpose Purpose, email string) error {
	key, ok := purpose.challengeKey(email)
	if !ok {
		return ErrUnknownPurpose
	}

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: delete challenge for %q: %w", email, err)
	}
	return nil
}

// HasChallenge reports whether a challenge is currently outstanding.
func (c *Cache) HasChallenge(ctx context.Context, purpose Purpose, email string) (bool, error) {
	_, err := c.GetChallenge(ctx, purpose, email)
	if errors.Is(err, ErrChallengeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
