package shop

import (
	"encoding/json"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

// decodePreferences разбирает booking_preferences по полям.
// Поле с неожиданным типом считается незаданным, остальные сохраняются:
// колонку могли заполнить другие клиенты базы.
func decodePreferences(raw []byte) *domain.PartialPreferences {
	if len(raw) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}

	prefs := &domain.PartialPreferences{}
	decodeField(fields, "maxBookingsPerDay", &prefs.MaxBookingsPerDay)
	decodeField(fields, "maxBookingsPerSlot", &prefs.MaxBookingsPerSlot)
	decodeField(fields, "slotDuration", &prefs.SlotDurationMinutes)
	decodeField(fields, "bufferTime", &prefs.BufferTimeMinutes)
	decodeField(fields, "advanceBookingDays", &prefs.AdvanceBookingDays)
	decodeField(fields, "allowSameDayBooking", &prefs.SameDayBookingAllowed)
	decodeField(fields, "autoConfirm", &prefs.AutoConfirm)
	decodeField(fields, "requirePhone", &prefs.RequirePhone)

	if rawHours, ok := fields["workingHours"]; ok {
		var hours map[string]json.RawMessage
		if err := json.Unmarshal(rawHours, &hours); err == nil && hours != nil {
			wh := &domain.PartialWorkingHours{}
			decodeField(hours, "start", &wh.Start)
			decodeField(hours, "end", &wh.End)
			if wh.Start != nil || wh.End != nil {
				prefs.WorkingHours = wh
			}
		}
	}

	return prefs
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst **T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

func encodePreferences(prefs *domain.PartialPreferences) ([]byte, error) {
	if prefs == nil {
		return nil, nil
	}
	return json.Marshal(prefs)
}
