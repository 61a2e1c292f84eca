package preferences

import (
	"context"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

// ShopRepository интерфейс репозитория мастерских
type ShopRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs *domain.PartialPreferences) (*domain.Shop, error)
}

// ShopCache кэш снимков мастерских
type ShopCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	Set(ctx context.Context, shop *domain.Shop) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
