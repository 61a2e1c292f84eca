package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	shopCache "github.com/ahmadnk31/fixwise/internal/infra/cache/shop"
	shopRepo "github.com/ahmadnk31/fixwise/internal/infra/storage/shop"
	"github.com/ahmadnk31/fixwise/internal/service/preferences/models"
)

// Service сервис настроек бронирования мастерских
type Service struct {
	shopRepo  ShopRepository
	cache     ShopCache
	txManager TxManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек.
// cache может быть nil, тогда мастерская всегда читается из БД
func NewService(
	shopRepo ShopRepository,
	cache ShopCache,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		shopRepo:  shopRepo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// GetShop получает мастерскую, сначала из кэша, затем из БД.
// Ошибки кэша не фатальны
func (s *Service) GetShop(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error) {
	if s.cache != nil {
		shop, err := s.cache.Get(ctx, shopID)
		if err == nil {
			return shop, nil
		}
		if !errors.Is(err, shopCache.ErrCacheMiss) {
			s.logger.Warn("GetShop: cache read failed for shop=%s: %v", shopID, err)
		}
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			return nil, ErrShopNotFound
		}
		s.logger.Error("GetShop: repository error for shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: GetShop - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, shop); err != nil {
			s.logger.Warn("GetShop: cache write failed for shop=%s: %v", shopID, err)
		}
	}

	return shop, nil
}

// Get возвращает разрешенную конфигурацию бронирования мастерской.
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, shopID uuid.UUID) (*models.PreferencesResponse, error) {
	s.logger.Info("Get: fetching preferences for shop=%s", shopID)

	shop, err := s.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, ErrShopNotFound) {
			s.logger.Warn("Get: shop=%s not found", shopID)
		}
		return nil, err
	}

	return models.FromResolved(shop.ID, Resolve(shop.Preferences)), nil
}

// Update частично обновляет настройки бронирования.
// Доступно только владельцу мастерской
func (s *Service) Update(ctx context.Context, req *models.UpdatePreferencesRequest) (*models.PreferencesResponse, error) {
	s.logger.Info("Update: updating preferences for shop=%s by user=%s", req.ShopID, req.UserID)

	// 1. Валидируем переданные значения
	if err := validatePatch(req.Preferences); err != nil {
		s.logger.Warn("Update: validation failed for shop=%s: %v", req.ShopID, err)
		return nil, err
	}

	var updated *domain.Shop
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 2. Читаем мастерскую с блокировкой строки
		shop, err := s.shopRepo.GetByID(ctx, req.ShopID)
		if err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				return ErrShopNotFound
			}
			return fmt.Errorf("%w: Update - get shop: %v", ErrInternal, err)
		}

		// 3. Проверяем права доступа (только владелец)
		if !shop.IsOwner(req.UserID) {
			return ErrAccessDenied
		}

		// 4. Сливаем и проверяем итоговые рабочие часы
		merged := Merge(shop.Preferences, req.Preferences)
		normalizePatch(merged)
		if err := validateMerged(merged); err != nil {
			return err
		}

		// 5. Сохраняем
		updated, err = s.shopRepo.UpdatePreferences(ctx, shop.ID, merged)
		if err != nil {
			if errors.Is(err, shopRepo.ErrShopNotFound) {
				return ErrShopNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrShopNotFound):
			s.logger.Warn("Update: shop=%s not found", req.ShopID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Update: user=%s is not the owner of shop=%s", req.UserID, req.ShopID)
		case errors.Is(err, ErrInvalidInput):
			s.logger.Warn("Update: validation failed for shop=%s: %v", req.ShopID, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("Update: failed for shop=%s: %v", req.ShopID, err)
		default:
			s.logger.Error("Update: transaction failed for shop=%s: %v", req.ShopID, err)
			return nil, fmt.Errorf("%w: Update - transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	// 6. Инвалидируем кэш: следующее бронирование увидит новые настройки
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, updated.ID); err != nil {
			s.logger.Error("Update: failed to invalidate cache for shop=%s: %v", updated.ID, err)
		}
	}

	s.logger.Info("Update: successfully updated preferences for shop=%s", updated.ID)
	return models.FromResolved(updated.ID, Resolve(updated.Preferences)), nil
}
