package create_booking

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

// BookingRepository интерфейс репозитория бронирований.
// Все счетчики учитывают только активные бронирования (pending, confirmed)
type BookingRepository interface {
	CountActive(ctx context.Context, shopID uuid.UUID, date time.Time) (int, error)
	CountActiveAtSlot(ctx context.Context, shopID uuid.UUID, date time.Time, startTime types.TimeString) (int, error)
	CountActiveByTime(ctx context.Context, shopID uuid.UUID, date time.Time) (map[types.TimeString]int, error)
	ListUpcomingDates(ctx context.Context, shopID uuid.UUID, from time.Time, limit int) ([]time.Time, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier ставит уведомления о новом бронировании в очередь
type Notifier interface {
	NotifyCustomer(ctx context.Context, booking *domain.Booking, shop *domain.Shop) error
	NotifyShop(ctx context.Context, booking *domain.Booking, shop *domain.Shop) error
}

// OutcomeRecorder счетчик исходов бронирования
type OutcomeRecorder interface {
	RecordBookingOutcome(outcome, reason string)
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
