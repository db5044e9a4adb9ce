// Package revocation records bearer tokens that were invalidated before their
// natural expiry.
package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenIDRequired is returned when an empty token id is given.
var ErrTokenIDRequired = errors.New("revocation: token id is required")

// Store revokes token ids and answers whether an id was revoked.
type Store interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type clocker interface {
	Now() time.Time
}

// Redis keeps revoked ids as keys that expire together with the token, so the
// set never outgrows the live tokens.
type Redis struct {
	client *redis.Client
	clock  clocker
	prefix string
}

// NewRedis returns a Redis backed Store.
func NewRedis(client *redis.Client, clock clocker) *Redis {
	return &Redis{
		client: client,
		clock:  clock,
		prefix: "phonegate:revoked:",
	}
}

// Revoke marks tokenID as revoked until expiresAt. Tokens already past their
// expiry are ignored since verification rejects them anyway.
func (r *Redis) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrTokenIDRequired
	}

	ttl := expiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return nil
	}

	return r.client.Set(ctx, r.prefix+tokenID, "1", ttl).Err()
}

func (r *Redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, ErrTokenIDRequired
	}

	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
