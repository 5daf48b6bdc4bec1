package resolver

import (
	"context"
	"errors"
	"fmt"

	"prive-ledger/services/ledger/internal/entity"

	"github.com/redis/go-redis/v9"
)

// ContentOwnerResolver maps a paid target (post, message, creator) to the user
// id that should be credited for it. The content catalog is an external
// collaborator; the post and chat services cache their records in Redis hashes
// with a creator_id field, and this is the read side of that contract.
type ContentOwnerResolver interface {
	OwnerOf(ctx context.Context, targetID string, kind entity.EntitlementKind) (string, error)
}

type redisResolver struct {
	client *redis.Client
}

func NewRedisResolver(client *redis.Client) ContentOwnerResolver {
	return &redisResolver{client: client}
}

func (r *redisResolver) OwnerOf(ctx context.Context, targetID string, kind entity.EntitlementKind) (string, error) {
	// A subscription's target is the creator.
	if kind == entity.EntitlementKindSubscription {
		return targetID, nil
	}

	key := fmt.Sprintf("post:%s", targetID)
	if kind == entity.EntitlementKindUnlockMessage {
		key = fmt.Sprintf("message:%s", targetID)
	}

	creatorID, err := r.client.HGet(ctx, key, "creator_id").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entity.ErrTargetNotFound
		}
		return "", fmt.Errorf("failed to resolve owner of %s: %w", targetID, err)
	}
	return creatorID, nil
}
