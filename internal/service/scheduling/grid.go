package scheduling

import (
	"fmt"

	"github.com/ahmadnk31/fixwise/pkg/types"
)

// GenerateSlots возвращает сетку start + k*duration, строго меньше end, по возрастанию.
// Пустая сетка (start >= end) не ошибка
func GenerateSlots(start, end types.TimeString, durationMinutes int) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	startMin := start.Minutes()
	endMin := end.Minutes()
	if startMin < 0 || endMin < 0 {
		return nil, fmt.Errorf("%w: start=%q end=%q", ErrInvalidTime, start, end)
	}

	slots := make([]types.TimeString, 0, max(0, (endMin-startMin+durationMinutes-1)/durationMinutes))
	for m := startMin; m < endMin; m += durationMinutes {
		slot, err := types.FromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
