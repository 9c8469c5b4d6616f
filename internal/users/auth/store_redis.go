// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phamqnam/bodylog/internal/platform/constants"
)

// CachingDirectory decorates a [Directory] with a Redis read-through cache on
// username lookups — the hot path of bearer-token authorization.
//
// # Staleness
//
// Only positive entries are cached, with a short TTL. A cache miss always
// falls through to the inner directory, so the registration existence check
// can never be fooled by a stale negative. Accounts are immutable after
// creation, which makes short positive caching safe.
type CachingDirectory struct {
	inner  Directory
	client *redis.Client
}

// NewCachingDirectory wraps the given directory with the Redis cache.
func NewCachingDirectory(inner Directory, client *redis.Client) *CachingDirectory {
	return &CachingDirectory{inner: inner, client: client}
}

// cachedUserPayload is the serialized cache shape. Unlike the entity's JSON
// form, it carries the password hash, because login verifies against it.
// It only ever travels between this process and Redis.
type cachedUserPayload struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// FindByUsername serves from cache when possible, falling back to the inner
// directory. Cache failures degrade to a plain store lookup; they are never
// surfaced to the caller.
func (directory *CachingDirectory) FindByUsername(context context.Context, username string) (*User, error) {
	key := fmt.Sprintf("%s%s", constants.RedisPrefixUserByName, username)

	if raw, err := directory.client.Get(context, key).Bytes(); err == nil {
		payload := &cachedUserPayload{}
		if err := json.Unmarshal(raw, payload); err == nil && payload.ID != "" {
			return &User{
				ID:           payload.ID,
				Username:     payload.Username,
				Email:        payload.Email,
				PasswordHash: payload.PasswordHash,
				CreatedAt:    payload.CreatedAt,
			}, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		_ = directory.client.Del(context, key).Err()
	}

	user, err := directory.inner.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedUserPayload{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err == nil {
		_ = directory.client.Set(context, key, raw, constants.UserCacheTTL).Err()
	}

	return user, nil
}

// FindByEmail delegates to the inner directory. Email lookups only happen
// during registration, which is not worth caching.
func (directory *CachingDirectory) FindByEmail(context context.Context, email string) (*User, error) {
	return directory.inner.FindByEmail(context, email)
}

// Insert delegates to the inner directory. No invalidation is needed: the
// cache holds positive entries only, and a brand-new username cannot have one.
func (directory *CachingDirectory) Insert(context context.Context, user *User) (string, error) {
	return directory.inner.Insert(context, user)
}

// ListAll delegates to the inner directory.
func (directory *CachingDirectory) ListAll(context context.Context) ([]*User, error) {
	return directory.inner.ListAll(context)
}
