package preferences

import (
	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// Defaults полная конфигурация по умолчанию
func Defaults() domain.BookingPreferences {
	return domain.BookingPreferences{
		MaxBookingsPerDay:  domain.DefaultMaxBookingsPerDay,
		MaxBookingsPerSlot: domain.DefaultMaxBookingsPerSlot,
		WorkingHours: domain.WorkingHours{
			Start: types.MustTimeString(domain.DefaultWorkingHoursStart),
			End:   types.MustTimeString(domain.DefaultWorkingHoursEnd),
		},
		SlotDurationMinutes:   domain.DefaultSlotDurationMinutes,
		BufferTimeMinutes:     domain.DefaultBufferTimeMinutes,
		AdvanceBookingDays:    domain.DefaultAdvanceBookingDays,
		SameDayBookingAllowed: domain.DefaultSameDayBookingAllowed,
		AutoConfirm:           domain.DefaultAutoConfirm,
		RequirePhone:          domain.DefaultRequirePhone,
	}
}

// Resolve сливает сохраненные настройки с дефолтами поле за полем.
//
// Отсутствующее или недопустимое значение заменяется дефолтом,
// workingHours сливаются на уровне вложенных полей. Если после слияния
// start >= end, берутся рабочие часы по умолчанию целиком.
// Функция чистая, результат не зависит ни от чего, кроме p.
func Resolve(p *domain.PartialPreferences) domain.BookingPreferences {
	resolved := Defaults()
	if p == nil {
		return resolved
	}

	if v := p.MaxBookingsPerDay; v != nil && *v >= 1 {
		resolved.MaxBookingsPerDay = *v
	}
	if v := p.MaxBookingsPerSlot; v != nil && *v >= 1 {
		resolved.MaxBookingsPerSlot = *v
	}
	if v := p.SlotDurationMinutes; v != nil && *v >= domain.MinSlotDurationMinutes && *v <= domain.MaxSlotDurationMinutes {
		resolved.SlotDurationMinutes = *v
	}
	if v := p.BufferTimeMinutes; v != nil && *v >= 0 {
		resolved.BufferTimeMinutes = *v
	}
	if v := p.AdvanceBookingDays; v != nil && *v >= 0 {
		resolved.AdvanceBookingDays = *v
	}
	if v := p.SameDayBookingAllowed; v != nil {
		resolved.SameDayBookingAllowed = *v
	}
	if v := p.AutoConfirm; v != nil {
		resolved.AutoConfirm = *v
	}
	if v := p.RequirePhone; v != nil {
		resolved.RequirePhone = *v
	}

	if p.WorkingHours != nil {
		hours := resolved.WorkingHours
		if t, ok := parseTime(p.WorkingHours.Start); ok {
			hours.Start = t
		}
		if t, ok := parseTime(p.WorkingHours.End); ok {
			hours.End = t
		}
		if hours.Start.IsBefore(hours.End) {
			resolved.WorkingHours = hours
		}
	}

	return resolved
}

func parseTime(s *string) (types.TimeString, bool) {
	if s == nil {
		return "", false
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return "", false
	}
	return t, true
}
