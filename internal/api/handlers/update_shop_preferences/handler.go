package update_shop_preferences

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ahmadnk31/fixwise/internal/api/handlers"
	"github.com/ahmadnk31/fixwise/internal/api/middleware"
	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/service/preferences"
	"github.com/ahmadnk31/fixwise/internal/service/preferences/models"
)

const (
	msgInvalidShopID      = "invalid shop ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgShopNotFound       = "shop not found"
	msgForbidden          = "access denied"
	msgInvalidData        = "invalid booking preferences"
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

// Handle PUT /api/v1/shops/{shopId}/preferences
// Тело - частичные настройки, обновляются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := handlers.PathUUID(r, "shopId")
	if err != nil {
		h.logger.Warn("PUT /shops/{id}/preferences - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /shops/{id}/preferences - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var patch domain.PartialPreferences
	if err := handlers.DecodeJSON(r, &patch); err != nil {
		h.logger.Warn("PUT /shops/{id}/preferences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdatePreferencesRequest{
		UserID:      userID,
		ShopID:      shopID,
		Preferences: patch,
	})
	if err != nil {
		switch {
		case errors.Is(err, preferences.ErrShopNotFound):
			h.logger.Warn("PUT /shops/{id}/preferences - Shop not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, preferences.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{id}/preferences - Access denied: shop_id=%s, user_id=%s", shopID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, preferences.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{id}/preferences - Invalid data: shop_id=%s, error=%v", shopID, err)
			handlers.RespondBadRequest(w, invalidDataMessage(err))

		default:
			h.logger.Error("PUT /shops/{id}/preferences - Failed to update preferences: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/preferences - Preferences updated: shop_id=%s, user_id=%s", shopID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// invalidDataMessage оставляет клиенту только описание поля без префикса пакета
func invalidDataMessage(err error) string {
	detail := strings.TrimPrefix(err.Error(), preferences.ErrInvalidInput.Error())
	detail = strings.TrimPrefix(detail, ": ")
	if detail == "" {
		return msgInvalidData
	}
	return msgInvalidData + ": " + detail
}
