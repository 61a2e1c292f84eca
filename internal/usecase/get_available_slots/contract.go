package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// ShopProvider источник мастерской с сохраненными настройками
type ShopProvider interface {
	GetShop(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountActive количество активных бронирований мастерской на дату
	CountActive(ctx context.Context, shopID uuid.UUID, date time.Time) (int, error)
	// CountActiveByTime количество активных бронирований на каждое время начала
	CountActiveByTime(ctx context.Context, shopID uuid.UUID, date time.Time) (map[types.TimeString]int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
