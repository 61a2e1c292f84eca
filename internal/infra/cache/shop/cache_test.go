package shop

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/ptr"
)

func TestCache_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrCache)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	err = cache.Set(ctx, &domain.Shop{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrCache)
}

// Требует запущенный Redis: REDIS_TEST_ADDR=localhost:6379
func TestCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	shop := &domain.Shop{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Name:    "Screen Doctor",
		Email:   "hello@screendoctor.example",
		Preferences: &domain.PartialPreferences{
			MaxBookingsPerSlot: ptr.Ptr(2),
			WorkingHours:       &domain.PartialWorkingHours{End: ptr.Ptr("19:00")},
		},
	}

	_, err := cache.Get(ctx, shop.ID)
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, shop))

	cached, err := cache.Get(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.OwnerID, cached.OwnerID)
	assert.Equal(t, shop.Preferences, cached.Preferences)

	require.NoError(t, cache.Invalidate(ctx, shop.ID))
	_, err = cache.Get(ctx, shop.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
