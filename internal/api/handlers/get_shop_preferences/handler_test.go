package get_shop_preferences

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ahmadnk31/fixwise/internal/service/preferences"
	"github.com/ahmadnk31/fixwise/internal/service/preferences/models"
	"github.com/ahmadnk31/fixwise/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Get(ctx context.Context, shopID uuid.UUID) (*models.PreferencesResponse, error) {
	args := m.Called(ctx, shopID)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.PreferencesResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(svc PreferencesService, id string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/shops/{shopId}/preferences", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops/"+id+"/preferences", nil))
	return rec
}

func TestHandle_ReturnsResolvedPreferences(t *testing.T) {
	shopID := uuid.New()
	svc := &mockService{}
	svc.On("Get", mock.Anything, shopID).Return(&models.PreferencesResponse{
		ShopID:              shopID,
		MaxBookingsPerDay:   8,
		MaxBookingsPerSlot:  1,
		WorkingHours:        models.WorkingHoursResponse{Start: "09:00", End: "17:00"},
		SlotDurationMinutes: 30,
		AdvanceBookingDays:  30,
	}, nil)

	rec := serve(svc, shopID.String())

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(8), body["maxBookingsPerDay"])
	assert.Equal(t, float64(30), body["slotDuration"])
	assert.Equal(t, map[string]interface{}{"start": "09:00", "end": "17:00"}, body["workingHours"])
}

func TestHandle_Errors(t *testing.T) {
	shopID := uuid.New()

	svc := &mockService{}
	svc.On("Get", mock.Anything, shopID).Return(nil, preferences.ErrShopNotFound).Once()
	assert.Equal(t, http.StatusNotFound, serve(svc, shopID.String()).Code)

	svc.On("Get", mock.Anything, shopID).Return(nil, errors.New("boom")).Once()
	assert.Equal(t, http.StatusInternalServerError, serve(svc, shopID.String()).Code)

	assert.Equal(t, http.StatusBadRequest, serve(svc, "42").Code)
}
