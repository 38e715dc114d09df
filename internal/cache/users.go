package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/photo_share/internal/models"
)

// UserTTL bounds how long a cached snapshot may serve reads before the
// database is consulted again.
const UserTTL = 900 * time.Second

// UserCache holds resolved user snapshots in redis, keyed by email.
// Redis is never authoritative: entries are written on database reads and
// dropped on user mutations.
type UserCache struct {
	RDB *redis.Client
}

func Key(email string) string {
	return "user:" + email
}

// Get returns the cached user for email. A missing key is (nil, false, nil);
// a connectivity failure is returned as an error, never as a miss.
func (c *UserCache) Get(ctx context.Context, email string) (*models.User, bool, error) {
	data, err := c.RDB.Get(ctx, Key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		// Corrupt entry: drop it and fall back to the database.
		c.RDB.Del(ctx, Key(email))
		return nil, false, nil
	}
	return &user, true, nil
}

func (c *UserCache) Put(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := c.RDB.Set(ctx, Key(user.Email), data, UserTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *UserCache) Invalidate(ctx context.Context, email string) error {
	if err := c.RDB.Del(ctx, Key(email)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
