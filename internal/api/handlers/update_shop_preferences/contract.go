package update_shop_preferences

import (
	"context"

	"github.com/ahmadnk31/fixwise/internal/service/preferences/models"
)

type PreferencesService interface {
	Update(ctx context.Context, req *models.UpdatePreferencesRequest) (*models.PreferencesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
