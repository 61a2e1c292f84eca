package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID       uuid.UUID              // ID мастерской
	Date         time.Time              // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date         time.Time              // Дата, на которую запрашивались слоты
	ShopID       uuid.UUID              // ID мастерской
	WorkingHours domain.WorkingHours    // Рабочие часы после разрешения настроек
	DayFull      bool                   // Достигнут лимит бронирований на день
	Slots        []domain.AvailableSlot // Слоты сетки с остатком мест
}
