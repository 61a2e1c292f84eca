package preferences

import (
	"fmt"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// validatePatch проверяет переданные значения до слияния
func validatePatch(p domain.PartialPreferences) error {
	if v := p.MaxBookingsPerDay; v != nil && (*v < 1 || *v > domain.MaxBookingsPerDayLimit) {
		return fmt.Errorf("%w: maxBookingsPerDay must be between 1 and %d", ErrInvalidInput, domain.MaxBookingsPerDayLimit)
	}
	if v := p.MaxBookingsPerSlot; v != nil && (*v < 1 || *v > domain.MaxBookingsPerSlotLimit) {
		return fmt.Errorf("%w: maxBookingsPerSlot must be between 1 and %d", ErrInvalidInput, domain.MaxBookingsPerSlotLimit)
	}
	if v := p.SlotDurationMinutes; v != nil && (*v < domain.MinSlotDurationMinutes || *v > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: slotDuration must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if v := p.BufferTimeMinutes; v != nil && (*v < 0 || *v > domain.MaxBufferTimeMinutes) {
		return fmt.Errorf("%w: bufferTime must be between 0 and %d", ErrInvalidInput, domain.MaxBufferTimeMinutes)
	}
	if v := p.AdvanceBookingDays; v != nil && (*v < 0 || *v > domain.MaxAdvanceBookingDays) {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if p.WorkingHours != nil {
		if s := p.WorkingHours.Start; s != nil {
			if _, err := types.NewTimeStringFromString(*s); err != nil {
				return fmt.Errorf("%w: workingHours.start: %v", ErrInvalidInput, err)
			}
		}
		if s := p.WorkingHours.End; s != nil {
			if _, err := types.NewTimeStringFromString(*s); err != nil {
				return fmt.Errorf("%w: workingHours.end: %v", ErrInvalidInput, err)
			}
		}
	}

	return nil
}

// validateMerged проверяет согласованность итоговых рабочих часов
func validateMerged(merged *domain.PartialPreferences) error {
	start := types.MustTimeString(domain.DefaultWorkingHoursStart)
	end := types.MustTimeString(domain.DefaultWorkingHoursEnd)

	if merged.WorkingHours != nil {
		if t, ok := parseTime(merged.WorkingHours.Start); ok {
			start = t
		}
		if t, ok := parseTime(merged.WorkingHours.End); ok {
			end = t
		}
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: workingHours.start (%s) must be before workingHours.end (%s)", ErrInvalidInput, start, end)
	}
	return nil
}

// normalizePatch приводит время к виду "HH:MM" перед сохранением
func normalizePatch(p *domain.PartialPreferences) {
	if p.WorkingHours == nil {
		return
	}
	if t, ok := parseTime(p.WorkingHours.Start); ok {
		s := t.String()
		p.WorkingHours.Start = &s
	}
	if t, ok := parseTime(p.WorkingHours.End); ok {
		s := t.String()
		p.WorkingHours.End = &s
	}
}
