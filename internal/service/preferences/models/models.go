package models

import (
	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

// Request модели

// UpdatePreferencesRequest запрос на частичное обновление настроек бронирования.
// Обновляются только переданные (not nil) поля
type UpdatePreferencesRequest struct {
	UserID      uuid.UUID
	ShopID      uuid.UUID
	Preferences domain.PartialPreferences
}

// Response модели

// WorkingHoursResponse рабочие часы в формате "HH:MM"
type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PreferencesResponse полная (разрешенная) конфигурация бронирования мастерской
type PreferencesResponse struct {
	ShopID                uuid.UUID            `json:"shopId"`
	MaxBookingsPerDay     int                  `json:"maxBookingsPerDay"`
	MaxBookingsPerSlot    int                  `json:"maxBookingsPerSlot"`
	WorkingHours          WorkingHoursResponse `json:"workingHours"`
	SlotDurationMinutes   int                  `json:"slotDuration"`
	BufferTimeMinutes     int                  `json:"bufferTime"`
	AdvanceBookingDays    int                  `json:"advanceBookingDays"`
	SameDayBookingAllowed bool                 `json:"allowSameDayBooking"`
	AutoConfirm           bool                 `json:"autoConfirm"`
	RequirePhone          bool                 `json:"requirePhone"`
}

// Методы конвертации

// FromResolved конвертирует разрешенную конфигурацию в DTO
func FromResolved(shopID uuid.UUID, p domain.BookingPreferences) *PreferencesResponse {
	return &PreferencesResponse{
		ShopID:             shopID,
		MaxBookingsPerDay:  p.MaxBookingsPerDay,
		MaxBookingsPerSlot: p.MaxBookingsPerSlot,
		WorkingHours: WorkingHoursResponse{
			Start: p.WorkingHours.Start.String(),
			End:   p.WorkingHours.End.String(),
		},
		SlotDurationMinutes:   p.SlotDurationMinutes,
		BufferTimeMinutes:     p.BufferTimeMinutes,
		AdvanceBookingDays:    p.AdvanceBookingDays,
		SameDayBookingAllowed: p.SameDayBookingAllowed,
		AutoConfirm:           p.AutoConfirm,
		RequirePhone:          p.RequirePhone,
	}
}
