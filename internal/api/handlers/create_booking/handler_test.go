package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	createBooking "github.com/ahmadnk31/fixwise/internal/usecase/create_booking"
	"github.com/ahmadnk31/fixwise/pkg/logger"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

var shopID = uuid.MustParse("6f1c2a34-0d5e-4b7a-9c11-2f6a8e3b4c5d")

func post(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody() string {
	return `{"shopId":"` + shopID.String() + `","date":"2026-03-11","time":"9:30","name":" Jane ","email":"jane@example.com","phone":"  "}`
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	bookingID := uuid.New()
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.ShopID == shopID &&
			r.Date.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) &&
			r.StartTime == "9:30" &&
			r.CustomerName == "Jane" &&
			r.CustomerPhone == nil
	})).Return(&createBooking.Response{
		ID:            bookingID,
		ShopID:        shopID,
		BookingDate:   time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:     types.MustTimeString("09:30"),
		Status:        "pending",
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Message:       "Booking request received.",
		CreatedAt:     time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}, nil)

	rec := post(t, uc, validBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	var body BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, bookingID.String(), body.ID)
	assert.Equal(t, "2026-03-11", body.BookingDate)
	assert.Equal(t, "09:30", body.StartTime)
	assert.Equal(t, "pending", body.Status)
	assert.False(t, body.AutoConfirmed)
	uc.AssertExpectations(t)
}

func TestHandle_RejectionCarriesAlternatives(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &createBooking.RejectionError{
		Reason:           createBooking.ReasonSlotFull,
		Message:          "This time slot is fully booked.",
		AlternativeTimes: []types.TimeString{"09:30", "10:30"},
	})

	rec := post(t, uc, validBody())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body RejectionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "slot_full", body.Reason)
	assert.Equal(t, []string{"09:30", "10:30"}, body.AlternativeTimes)
	assert.Empty(t, body.AlternativeDates)
}

func TestHandle_DayFullDates(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &createBooking.RejectionError{
		Reason:           createBooking.ReasonDayFull,
		Message:          "This day is fully booked.",
		AlternativeDates: []time.Time{time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)},
	})

	rec := post(t, uc, validBody())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body RejectionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"2026-03-12"}, body.AlternativeDates)
}

func TestHandle_ConcurrentConflict(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &createBooking.RejectionError{
		Reason:  createBooking.ReasonSlotTakenConcurrently,
		Message: "This slot was just booked by someone else.",
	})

	rec := post(t, uc, validBody())

	require.Equal(t, http.StatusConflict, rec.Code)
	var body RejectionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "slot_taken_concurrently", body.Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"malformed json", `{"shopId":`, nil, http.StatusBadRequest},
		{"empty body", ``, nil, http.StatusBadRequest},
		{"bad shop id", `{"shopId":"nope","date":"2026-03-11","time":"10:00"}`, nil, http.StatusBadRequest},
		{"bad date", `{"shopId":"` + shopID.String() + `","date":"11.03.2026","time":"10:00"}`, nil, http.StatusBadRequest},
		{"bad diagnosis id", `{"shopId":"` + shopID.String() + `","diagnosisId":"x"}`, nil, http.StatusBadRequest},
		{"shop not found", validBody(), createBooking.ErrShopNotFound, http.StatusNotFound},
		{"internal", validBody(), errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := post(t, uc, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
