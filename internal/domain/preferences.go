package domain

import "github.com/ahmadnk31/fixwise/pkg/types"

// WorkingHours полуоткрытое окно приема [Start, End)
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if t is inside [Start, End)
func (w WorkingHours) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// BookingPreferences полная конфигурация бронирования мастерской.
// Значение неизменяемо в рамках обработки одного запроса
type BookingPreferences struct {
	MaxBookingsPerDay     int
	MaxBookingsPerSlot    int
	WorkingHours          WorkingHours
	SlotDurationMinutes   int
	BufferTimeMinutes     int
	AdvanceBookingDays    int
	SameDayBookingAllowed bool
	AutoConfirm           bool
	RequirePhone          bool
}

// PartialWorkingHours сохраненные рабочие часы, любое поле может отсутствовать
type PartialWorkingHours struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// PartialPreferences настройки в том виде, в каком они лежат в shops.booking_preferences (JSONB).
// nil означает "не задано"
type PartialPreferences struct {
	MaxBookingsPerDay     *int                 `json:"maxBookingsPerDay,omitempty"`
	MaxBookingsPerSlot    *int                 `json:"maxBookingsPerSlot,omitempty"`
	WorkingHours          *PartialWorkingHours `json:"workingHours,omitempty"`
	SlotDurationMinutes   *int                 `json:"slotDuration,omitempty"`
	BufferTimeMinutes     *int                 `json:"bufferTime,omitempty"`
	AdvanceBookingDays    *int                 `json:"advanceBookingDays,omitempty"`
	SameDayBookingAllowed *bool                `json:"allowSameDayBooking,omitempty"`
	AutoConfirm           *bool                `json:"autoConfirm,omitempty"`
	RequirePhone          *bool                `json:"requirePhone,omitempty"`
}
