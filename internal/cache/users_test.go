package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/photo_share/internal/models"
)

func newTestCache(t *testing.T) (*UserCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &UserCache{RDB: rdb}, mr
}

func TestUserCache_PutGet(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	user := &models.User{
		ID:        7,
		Username:  "alice",
		Email:     "alice@example.com",
		Role:      models.RoleModerator,
		Confirmed: true,
	}
	require.NoError(t, c.Put(ctx, user))

	got, ok, err := c.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Role, got.Role)
	assert.True(t, got.Confirmed)

	ttl := mr.TTL(Key("alice@example.com"))
	assert.Equal(t, UserTTL, ttl)
}

func TestUserCache_Get_Miss(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)

	got, ok, err := c.Get(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestUserCache_Get_Expired(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, &models.User{Email: "bob@example.com"}))
	mr.FastForward(UserTTL + time.Second)

	_, ok, err := c.Get(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserCache_Get_CorruptEntry(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(Key("bad@example.com"), "{not json"))

	got, ok, err := c.Get(ctx, "bad@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	// Corrupt entry must have been dropped.
	assert.False(t, mr.Exists(Key("bad@example.com")))
}

func TestUserCache_Get_ConnectivityFailureIsNotAMiss(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	mr.Close()

	_, ok, err := c.Get(context.Background(), "alice@example.com")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestUserCache_Invalidate(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, &models.User{Email: "carol@example.com"}))
	require.NoError(t, c.Invalidate(ctx, "carol@example.com"))

	_, ok, err := c.Get(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
