package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ShopID      uuid.UUID        // ID мастерской
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	DiagnosisID *uuid.UUID       // Диагностика, из которой пришел клиент (опционально)

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string // Обязателен, если мастерская требует телефон
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	DiagnosisID *uuid.UUID
	BookingDate time.Time
	StartTime   types.TimeString
	Status      string

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	AutoConfirmed bool   // Бронирование подтверждено сразу, без участия мастерской
	Message       string // Текст для клиента

	CreatedAt time.Time
}
