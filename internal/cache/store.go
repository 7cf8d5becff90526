// Package cache is a Redis read-through cache for denormalized response
// payloads (profile and project listings). Writers invalidate their group
// after every mutation; TTL covers anything that slips through.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "ml:cache:"  // Cached payloads: ml:cache:{group}:{key}
	groupPrefix = "ml:group:"  // Set of live keys per group: ml:group:{group}
	defaultTTL  = 5 * time.Minute
)

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(group, key string) string {
	return keyPrefix + group + ":" + key
}

func (s *Store) groupKey(group string) string {
	return groupPrefix + group
}

// Get unmarshals a cached payload into v. Returns false on a miss.
func (s *Store) Get(ctx context.Context, group, key string, v any) (bool, error) {
	data, err := s.client.Get(ctx, s.key(group, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores a payload and registers the key in its group set so the whole
// group can be dropped on invalidation.
func (s *Store) Set(ctx context.Context, group, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	full := s.key(group, key)
	gk := s.groupKey(group)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, full, data, s.ttl)
	pipe.SAdd(ctx, gk, full)
	pipe.Expire(ctx, gk, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateGroup drops every cached key registered under a group.
func (s *Store) InvalidateGroup(ctx context.Context, group string) error {
	gk := s.groupKey(group)

	keys, err := s.client.SMembers(ctx, gk).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache group members: %w", err)
	}

	pipe := s.client.Pipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, gk)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Well-known cache groups.
const (
	GroupProfiles = "profiles"
	GroupProjects = "projects"
)

// BrowseKey builds a stable key for a filtered, paged listing.
func BrowseKey(parts ...string) string {
	key := "browse"
	for _, p := range parts {
		key += "|" + p
	}
	return key
}
