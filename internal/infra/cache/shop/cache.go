package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

const keyPrefix = "fixwise:shop:"

// snapshot то, что кладется в Redis. Сохраненные настройки кладутся как есть,
// разрешение значений по умолчанию выполняется после чтения
type snapshot struct {
	ID          uuid.UUID                  `json:"id"`
	OwnerID     uuid.UUID                  `json:"ownerId"`
	Name        string                     `json:"name"`
	Email       string                     `json:"email"`
	Phone       *string                    `json:"phone,omitempty"`
	Preferences *domain.PartialPreferences `json:"preferences,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// Cache кэш снимков мастерских в Redis.
// Счетчики бронирований здесь никогда не хранятся
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCache создает кэш мастерских
func NewCache(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает снимок мастерской или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrCache, err)
	}

	var s snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: Get - decode snapshot: %v", ErrCache, err)
	}

	return &domain.Shop{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Preferences: s.Preferences,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

// Set кладет снимок мастерской в кэш на время ttl
func (c *Cache) Set(ctx context.Context, shop *domain.Shop) error {
	raw, err := json.Marshal(snapshot{
		ID:          shop.ID,
		OwnerID:     shop.OwnerID,
		Name:        shop.Name,
		Email:       shop.Email,
		Phone:       shop.Phone,
		Preferences: shop.Preferences,
		CreatedAt:   shop.CreatedAt,
		UpdatedAt:   shop.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: Set - encode snapshot: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key(shop.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет снимок мастерской, вызывается после изменения настроек
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCache, err)
	}
	return nil
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}
