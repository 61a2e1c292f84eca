package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a repair appointment at a shop
type Booking struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	DiagnosisID *uuid.UUID // ссылка на диагностику, из которой пришел клиент (опционально)
	BookingDate time.Time
	StartTime   types.TimeString
	Status      BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsActive returns true for statuses that occupy capacity (pending, confirmed)
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true for statuses that can no longer change
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the booking may move to the given status.
// pending -> confirmed | cancelled, confirmed -> completed | cancelled
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// InitialStatus статус нового бронирования в зависимости от автоподтверждения
func InitialStatus(autoConfirm bool) BookingStatus {
	if autoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}

// ShopBookingsFilter фильтр для получения бронирований мастерской
type ShopBookingsFilter struct {
	ShopID          uuid.UUID      // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные и отмененные
}
