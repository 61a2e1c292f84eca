package preferences

import "github.com/ahmadnk31/fixwise/internal/domain"

// Merge накладывает patch на сохраненные настройки base и возвращает новый объект.
// nil-поля patch не меняют base, рабочие часы сливаются по вложенным полям
func Merge(base *domain.PartialPreferences, patch domain.PartialPreferences) *domain.PartialPreferences {
	merged := domain.PartialPreferences{}
	if base != nil {
		merged = *base
		if base.WorkingHours != nil {
			hours := *base.WorkingHours
			merged.WorkingHours = &hours
		}
	}

	if patch.MaxBookingsPerDay != nil {
		merged.MaxBookingsPerDay = patch.MaxBookingsPerDay
	}
	if patch.MaxBookingsPerSlot != nil {
		merged.MaxBookingsPerSlot = patch.MaxBookingsPerSlot
	}
	if patch.SlotDurationMinutes != nil {
		merged.SlotDurationMinutes = patch.SlotDurationMinutes
	}
	if patch.BufferTimeMinutes != nil {
		merged.BufferTimeMinutes = patch.BufferTimeMinutes
	}
	if patch.AdvanceBookingDays != nil {
		merged.AdvanceBookingDays = patch.AdvanceBookingDays
	}
	if patch.SameDayBookingAllowed != nil {
		merged.SameDayBookingAllowed = patch.SameDayBookingAllowed
	}
	if patch.AutoConfirm != nil {
		merged.AutoConfirm = patch.AutoConfirm
	}
	if patch.RequirePhone != nil {
		merged.RequirePhone = patch.RequirePhone
	}

	if patch.WorkingHours != nil {
		if merged.WorkingHours == nil {
			merged.WorkingHours = &domain.PartialWorkingHours{}
		}
		if patch.WorkingHours.Start != nil {
			merged.WorkingHours.Start = patch.WorkingHours.Start
		}
		if patch.WorkingHours.End != nil {
			merged.WorkingHours.End = patch.WorkingHours.End
		}
	}

	return &merged
}
