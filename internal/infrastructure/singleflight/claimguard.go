// Package singleflight guards against duplicate concurrent claim
// submissions. A claim is identified by its destination, sender and amount;
// while one submission is in flight, identical ones are refused.
package singleflight

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ta7wila/internal/shared/constants"
)

type ClaimGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClaimGuard(client *redis.Client) *ClaimGuard {
	return &ClaimGuard{
		client: client,
		ttl:    time.Duration(constants.ClaimGuardTTLSeconds) * time.Second,
	}
}

// Acquire takes the in-flight lock for a claim. It returns false when an
// identical claim is already being processed.
func (g *ClaimGuard) Acquire(ctx context.Context, destinationID uint, senderValue string, amountCents int64) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(destinationID, senderValue, amountCents), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire claim guard: %w", err)
	}
	return ok, nil
}

// Release frees the lock once the claim submission finished. The TTL covers
// the case where the process dies before releasing.
func (g *ClaimGuard) Release(ctx context.Context, destinationID uint, senderValue string, amountCents int64) error {
	if err := g.client.Del(ctx, g.key(destinationID, senderValue, amountCents)).Err(); err != nil {
		return fmt.Errorf("failed to release claim guard: %w", err)
	}
	return nil
}

func (g *ClaimGuard) key(destinationID uint, senderValue string, amountCents int64) string {
	return fmt.Sprintf("claimguard:%d:%s:%d", destinationID, senderValue, amountCents)
}
