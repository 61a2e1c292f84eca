package get_shop_preferences

import (
	"context"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/service/preferences/models"
)

type PreferencesService interface {
	Get(ctx context.Context, shopID uuid.UUID) (*models.PreferencesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
