package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/fixwise/internal/domain"
	shopCache "github.com/ahmadnk31/fixwise/internal/infra/cache/shop"
	shopRepo "github.com/ahmadnk31/fixwise/internal/infra/storage/shop"
	"github.com/ahmadnk31/fixwise/internal/service/preferences/models"
	"github.com/ahmadnk31/fixwise/pkg/logger"
	"github.com/ahmadnk31/fixwise/pkg/ptr"
)

type mockShopRepo struct{ mock.Mock }

func (m *mockShopRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*domain.Shop)
	return shop, args.Error(1)
}

func (m *mockShopRepo) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs *domain.PartialPreferences) (*domain.Shop, error) {
	args := m.Called(ctx, id, prefs)
	shop, _ := args.Get(0).(*domain.Shop)
	return shop, args.Error(1)
}

type mockShopCache struct{ mock.Mock }

func (m *mockShopCache) Get(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	shop, _ := args.Get(0).(*domain.Shop)
	return shop, args.Error(1)
}

func (m *mockShopCache) Set(ctx context.Context, shop *domain.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *mockShopCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *mockShopRepo, cache ShopCache) *Service {
	return NewService(repo, cache, inlineTx{}, logger.NewNop())
}

func TestService_GetShop_CacheHit(t *testing.T) {
	repo, cache := &mockShopRepo{}, &mockShopCache{}
	shop := &domain.Shop{ID: uuid.New()}

	cache.On("Get", mock.Anything, shop.ID).Return(shop, nil)

	got, err := newService(repo, cache).GetShop(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Same(t, shop, got)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_GetShop_CacheMissFillsCache(t *testing.T) {
	repo, cache := &mockShopRepo{}, &mockShopCache{}
	shop := &domain.Shop{ID: uuid.New()}

	cache.On("Get", mock.Anything, shop.ID).Return(nil, shopCache.ErrCacheMiss)
	repo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)
	cache.On("Set", mock.Anything, shop).Return(nil)

	got, err := newService(repo, cache).GetShop(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Same(t, shop, got)
	cache.AssertExpectations(t)
}

func TestService_GetShop_CacheFailureIsNotFatal(t *testing.T) {
	repo, cache := &mockShopRepo{}, &mockShopCache{}
	shop := &domain.Shop{ID: uuid.New()}

	cache.On("Get", mock.Anything, shop.ID).Return(nil, errors.New("redis down"))
	repo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)
	cache.On("Set", mock.Anything, shop).Return(errors.New("redis down"))

	got, err := newService(repo, cache).GetShop(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Same(t, shop, got)
}

func TestService_GetShop_NotFound(t *testing.T) {
	repo := &mockShopRepo{}
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, shopRepo.ErrShopNotFound)

	_, err := newService(repo, nil).GetShop(context.Background(), id)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestService_Get_ResolvesDefaults(t *testing.T) {
	repo := &mockShopRepo{}
	shop := &domain.Shop{ID: uuid.New(), Preferences: &domain.PartialPreferences{MaxBookingsPerSlot: ptr.Ptr(2)}}
	repo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	got, err := newService(repo, nil).Get(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MaxBookingsPerSlot)
	assert.Equal(t, 10, got.MaxBookingsPerDay)
	assert.Equal(t, "09:00", got.WorkingHours.Start)
}

func TestService_Update_OwnerMergesAndInvalidates(t *testing.T) {
	repo, cache := &mockShopRepo{}, &mockShopCache{}
	owner := uuid.New()
	shop := &domain.Shop{
		ID:          uuid.New(),
		OwnerID:     owner,
		Preferences: &domain.PartialPreferences{MaxBookingsPerDay: ptr.Ptr(4)},
	}

	expected := &domain.PartialPreferences{
		MaxBookingsPerDay: ptr.Ptr(4),
		AutoConfirm:       ptr.Ptr(true),
		WorkingHours:      &domain.PartialWorkingHours{Start: ptr.Ptr("08:00")},
	}
	updated := &domain.Shop{ID: shop.ID, OwnerID: owner, Preferences: expected}

	repo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)
	repo.On("UpdatePreferences", mock.Anything, shop.ID, expected).Return(updated, nil)
	cache.On("Invalidate", mock.Anything, shop.ID).Return(nil)

	got, err := newService(repo, cache).Update(context.Background(), &models.UpdatePreferencesRequest{
		UserID: owner,
		ShopID: shop.ID,
		Preferences: domain.PartialPreferences{
			AutoConfirm:  ptr.Ptr(true),
			WorkingHours: &domain.PartialWorkingHours{Start: ptr.Ptr("8:00")},
		},
	})

	require.NoError(t, err)
	assert.True(t, got.AutoConfirm)
	assert.Equal(t, 4, got.MaxBookingsPerDay)
	assert.Equal(t, "08:00", got.WorkingHours.Start)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Update_NotOwner(t *testing.T) {
	repo := &mockShopRepo{}
	shop := &domain.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	repo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	_, err := newService(repo, nil).Update(context.Background(), &models.UpdatePreferencesRequest{
		UserID:      uuid.New(),
		ShopID:      shop.ID,
		Preferences: domain.PartialPreferences{AutoConfirm: ptr.Ptr(true)},
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "UpdatePreferences", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name  string
		patch domain.PartialPreferences
	}{
		{"zero day capacity", domain.PartialPreferences{MaxBookingsPerDay: ptr.Ptr(0)}},
		{"huge slot capacity", domain.PartialPreferences{MaxBookingsPerSlot: ptr.Ptr(1000)}},
		{"zero slot duration", domain.PartialPreferences{SlotDurationMinutes: ptr.Ptr(0)}},
		{"negative buffer", domain.PartialPreferences{BufferTimeMinutes: ptr.Ptr(-1)}},
		{"advance over a year", domain.PartialPreferences{AdvanceBookingDays: ptr.Ptr(400)}},
		{"bad start", domain.PartialPreferences{WorkingHours: &domain.PartialWorkingHours{Start: ptr.Ptr("25:00")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockShopRepo{}
			_, err := newService(repo, nil).Update(context.Background(), &models.UpdatePreferencesRequest{
				UserID:      uuid.New(),
				ShopID:      uuid.New(),
				Preferences: tt.patch,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update_InvertedHoursAfterMerge(t *testing.T) {
	repo := &mockShopRepo{}
	owner := uuid.New()
	shop := &domain.Shop{
		ID:          uuid.New(),
		OwnerID:     owner,
		Preferences: &domain.PartialPreferences{WorkingHours: &domain.PartialWorkingHours{End: ptr.Ptr("12:00")}},
	}
	repo.On("GetByID", mock.Anything, shop.ID).Return(shop, nil)

	_, err := newService(repo, nil).Update(context.Background(), &models.UpdatePreferencesRequest{
		UserID:      owner,
		ShopID:      shop.ID,
		Preferences: domain.PartialPreferences{WorkingHours: &domain.PartialWorkingHours{Start: ptr.Ptr("13:00")}},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdatePreferences", mock.Anything, mock.Anything, mock.Anything)
}
