package get_available_slots

import (
	"time"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// isBookableDate проверяет, можно ли вообще записаться на дату.
// Прошлое, даты дальше advanceBookingDays и сегодня при запрете записи
// на сегодня дают пустую сетку
func isBookableDate(date, today time.Time, prefs domain.BookingPreferences) bool {
	if date.Before(today) {
		return false
	}
	if date.After(domain.AddDays(today, prefs.AdvanceBookingDays)) {
		return false
	}
	if domain.IsSameDay(date, today) && !prefs.SameDayBookingAllowed {
		return false
	}
	return true
}

// filterUpcoming оставляет слоты, начинающиеся строго после now
func filterUpcoming(slots []types.TimeString, now types.TimeString) []types.TimeString {
	upcoming := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAfter(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

// calculateAvailableSpots вычисляет количество свободных мест для каждого слота.
// Если день заполнен, у всех слотов 0 свободных мест
func calculateAvailableSpots(
	slots []types.TimeString,
	slotDuration int,
	counts map[types.TimeString]int,
	maxPerSlot int,
	dayFull bool,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slots))

	for i, slotStart := range slots {
		available := 0
		if !dayFull {
			available = max(maxPerSlot-countAt(counts, slotStart), 0)
		}

		result[i] = domain.AvailableSlot{
			StartTime:       slotStart,
			DurationMinutes: slotDuration,
			AvailableSpots:  available,
			TotalSpots:      maxPerSlot,
		}
	}

	return result
}

// countAt ищет счетчик по минутам, ключи из БД могут быть не нормализованы
func countAt(counts map[types.TimeString]int, slot types.TimeString) int {
	if n, ok := counts[slot]; ok {
		return n
	}
	total := 0
	for t, n := range counts {
		if t.Equal(slot) {
			total += n
		}
	}
	return total
}
