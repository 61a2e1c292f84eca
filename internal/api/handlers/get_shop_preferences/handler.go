package get_shop_preferences

import (
	"errors"
	"net/http"

	"github.com/ahmadnk31/fixwise/internal/api/handlers"
	"github.com/ahmadnk31/fixwise/internal/service/preferences"
)

const (
	msgInvalidShopID = "invalid shop ID"
	msgShopNotFound  = "shop not found"
)

type Handler struct {
	service PreferencesService
	logger  Logger
}

func NewHandler(service PreferencesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/preferences
// Возвращает настройки с подставленными значениями по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathUUID(r, "shopId")
	if err != nil {
		h.logger.Warn("GET /shops/{id}/preferences - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	result, err := h.service.Get(r.Context(), shopID)
	if err != nil {
		switch {
		case errors.Is(err, preferences.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/preferences - Shop not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		default:
			h.logger.Error("GET /shops/{id}/preferences - Failed to get preferences: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/preferences - Preferences retrieved: shop_id=%s", shopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
