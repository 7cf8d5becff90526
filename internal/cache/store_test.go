package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreRoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	in := []payload{{Name: "lo-fi", Count: 3}, {Name: "house", Count: 1}}
	require.NoError(t, store.Set(ctx, GroupProjects, BrowseKey("house", "", "20", "0"), in))

	var out []payload
	hit, err := store.Get(ctx, GroupProjects, BrowseKey("house", "", "20", "0"), &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestStoreMiss(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, time.Minute)

	var out []payload
	hit, err := store.Get(context.Background(), GroupProjects, "nope", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)
}

func TestStoreGroupInvalidation(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, GroupProjects, "a", payload{Name: "a"}))
	require.NoError(t, store.Set(ctx, GroupProjects, "b", payload{Name: "b"}))
	require.NoError(t, store.Set(ctx, GroupProfiles, "c", payload{Name: "c"}))

	require.NoError(t, store.InvalidateGroup(ctx, GroupProjects))

	var out payload
	hit, err := store.Get(ctx, GroupProjects, "a", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = store.Get(ctx, GroupProjects, "b", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	// other groups untouched
	hit, err = store.Get(ctx, GroupProfiles, "c", &out)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestStoreTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, GroupProfiles, "k", payload{Name: "x"}))

	mr.FastForward(2 * time.Minute)

	var out payload
	hit, err := store.Get(ctx, GroupProfiles, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBrowseKey(t *testing.T) {
	assert.Equal(t, "browse|rock||20|0", BrowseKey("rock", "", "20", "0"))
	assert.NotEqual(t, BrowseKey("rock", "", "20", "0"), BrowseKey("", "rock", "20", "0"))
}
