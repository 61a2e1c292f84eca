package create_booking

import (
	"errors"
	"time"

	"github.com/ahmadnk31/fixwise/pkg/types"
)

// ReasonCode стабильный код причины отказа для программной обработки
type ReasonCode string

const (
	ReasonMissingFields         ReasonCode = "missing_fields"
	ReasonInvalidInput          ReasonCode = "invalid_input"
	ReasonInPast                ReasonCode = "in_past"
	ReasonSameDayDisallowed     ReasonCode = "same_day_disallowed"
	ReasonTooFarAdvance         ReasonCode = "too_far_advance"
	ReasonOutsideHours          ReasonCode = "outside_hours"
	ReasonDayFull               ReasonCode = "day_full"
	ReasonSlotFull              ReasonCode = "slot_full"
	ReasonPhoneRequired         ReasonCode = "phone_required"
	ReasonSlotTakenConcurrently ReasonCode = "slot_taken_concurrently"
)

var (
	// ErrMissingFields не заполнены обязательные поля
	ErrMissingFields = errors.New("create_booking: missing required fields")

	// ErrInvalidInput некорректный формат входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateInPast дата или время уже прошли
	ErrDateInPast = errors.New("create_booking: requested slot is in the past")

	// ErrSameDayDisallowed мастерская не принимает записи на сегодня
	ErrSameDayDisallowed = errors.New("create_booking: same-day booking is not allowed")

	// ErrDateTooFarInFuture дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrOutsideWorkingHours время вне рабочих часов мастерской
	ErrOutsideWorkingHours = errors.New("create_booking: time is outside working hours")

	// ErrDayFull достигнут лимит бронирований на день
	ErrDayFull = errors.New("create_booking: day is fully booked")

	// ErrSlotFull достигнут лимит бронирований на слот
	ErrSlotFull = errors.New("create_booking: slot is fully booked")

	// ErrPhoneRequired мастерская требует номер телефона
	ErrPhoneRequired = errors.New("create_booking: phone number is required")

	// ErrSlotTakenConcurrently слот заняли параллельным запросом между проверкой и вставкой
	ErrSlotTakenConcurrently = errors.New("create_booking: slot was taken concurrently")

	// ErrShopNotFound возвращается, когда мастерская не найдена
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

var reasonErrors = map[ReasonCode]error{
	ReasonMissingFields:         ErrMissingFields,
	ReasonInvalidInput:          ErrInvalidInput,
	ReasonInPast:                ErrDateInPast,
	ReasonSameDayDisallowed:     ErrSameDayDisallowed,
	ReasonTooFarAdvance:         ErrDateTooFarInFuture,
	ReasonOutsideHours:          ErrOutsideWorkingHours,
	ReasonDayFull:               ErrDayFull,
	ReasonSlotFull:              ErrSlotFull,
	ReasonPhoneRequired:         ErrPhoneRequired,
	ReasonSlotTakenConcurrently: ErrSlotTakenConcurrently,
}

// RejectionError отказ в бронировании с кодом причины и, возможно, альтернативами.
// AlternativeDates заполняется только для day_full, AlternativeTimes только для
// slot_full и slot_taken_concurrently
type RejectionError struct {
	Reason           ReasonCode
	Message          string
	AlternativeDates []time.Time
	AlternativeTimes []types.TimeString
}

func (e *RejectionError) Error() string {
	return string(e.Reason) + ": " + e.Message
}

// Unwrap позволяет errors.Is(err, ErrSlotFull) и т.п.
func (e *RejectionError) Unwrap() error {
	return reasonErrors[e.Reason]
}

// IsConflict true для проигранной гонки (409), false для отказа по правилам (400)
func (e *RejectionError) IsConflict() bool {
	return e.Reason == ReasonSlotTakenConcurrently
}

func reject(reason ReasonCode, message string) *RejectionError {
	return &RejectionError{Reason: reason, Message: message}
}
