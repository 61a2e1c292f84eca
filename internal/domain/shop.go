package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shop мастерская по ремонту устройств с ее настройками бронирования
type Shop struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Email   string
	Phone   *string

	// Preferences сохраненные настройки как есть, могут быть частичными или nil.
	// Полная конфигурация получается только через preferences.Resolve
	Preferences *PartialPreferences

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner returns true if the user owns the shop
func (s *Shop) IsOwner(userID uuid.UUID) bool {
	return userID != uuid.Nil && s.OwnerID == userID
}
