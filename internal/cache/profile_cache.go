package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"sharespace/internal/model"
)

const versionTTL = 24 * time.Hour

// ProfileCache keeps the public part of a user document in redis. The password
// hash never reaches the cache because it is excluded from the JSON encoding.
type ProfileCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewProfileCache(client *redisv9.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProfileCache) GetProfile(ctx context.Context, userID string) (*model.User, bool, error) {
	raw, err := c.client.Get(ctx, c.profileKey(userID)).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get profile failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached profile failed: %w", err)
	}
	return &user, true, nil
}

// ProfileVersion returns the invalidation counter for userID. Read it before
// loading the document that will be passed to SetProfile.
func (c *ProfileCache) ProfileVersion(ctx context.Context, userID string) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey(userID)).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get profile version failed: %w", err)
	}
	return version, nil
}

// SetProfile stores user only while the invalidation counter still equals
// version. A profile read before a concurrent DeleteProfile is dropped.
func (c *ProfileCache) SetProfile(ctx context.Context, user *model.User, version int64) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal profile cache failed: %w", err)
	}

	userID := user.ID.Hex()
	versionKey := c.versionKey(userID)
	err = c.client.Watch(ctx, func(tx *redisv9.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && err != redisv9.Nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
			pipe.Set(ctx, c.profileKey(userID), payload, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	if err == redisv9.TxFailedErr {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis set profile failed: %w", err)
	}
	return nil
}

// DeleteProfile drops the cached profile and bumps its version so that reads
// already in flight cannot put the old document back.
func (c *ProfileCache) DeleteProfile(ctx context.Context, userID string) error {
	versionKey := c.versionKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		pipe.Del(ctx, c.profileKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete profile failed: %w", err)
	}
	return nil
}

func (c *ProfileCache) profileKey(userID string) string {
	return fmt.Sprintf("user:profile:%s", userID)
}

func (c *ProfileCache) versionKey(userID string) string {
	return fmt.Sprintf("user:profile:ver:%s", userID)
}
