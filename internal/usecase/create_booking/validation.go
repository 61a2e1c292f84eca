package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// clock "сейчас" в часовом поясе мастерских
type clock struct {
	today time.Time        // календарный день, полночь UTC
	now   types.TimeString // текущее время суток
}

func newClock(now time.Time, loc *time.Location) clock {
	local := now.In(loc)
	return clock{
		today: domain.DateOnly(local),
		now:   types.NewTimeString(local),
	}
}

// validateRequiredFields шаг 1: обязательные поля и их формат.
// Обращений к хранилищу до этой проверки нет
func validateRequiredFields(req *Request) *RejectionError {
	var missing []string
	if req.ShopID == uuid.Nil {
		missing = append(missing, "shopId")
	}
	if req.Date.IsZero() {
		missing = append(missing, "date")
	}
	if req.StartTime.IsZero() {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return reject(ReasonMissingFields, "Missing required fields: "+strings.Join(missing, ", "))
	}

	if err := req.StartTime.Validate(); err != nil {
		return reject(ReasonInvalidInput, fmt.Sprintf("Invalid time %q, expected HH:MM", req.StartTime))
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return reject(ReasonInvalidInput, "Invalid email address")
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return reject(ReasonInvalidInput, fmt.Sprintf("Name must be at most %d characters", domain.MaxCustomerNameLength))
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return reject(ReasonInvalidInput, fmt.Sprintf("Notes must be at most %d characters", domain.MaxNotesLength))
	}

	return nil
}

// validateSameDay шаг 2: политика записи на сегодня
func validateSameDay(date time.Time, prefs domain.BookingPreferences, c clock) *RejectionError {
	if domain.IsSameDay(date, c.today) && !prefs.SameDayBookingAllowed {
		return reject(ReasonSameDayDisallowed, "This shop does not accept same-day bookings. Please choose a later date.")
	}
	return nil
}

// validateDateWindow шаг 3: дата не в прошлом и не дальше advanceBookingDays
func validateDateWindow(date time.Time, startTime types.TimeString, prefs domain.BookingPreferences, c clock) *RejectionError {
	if date.Before(c.today) {
		return reject(ReasonInPast, "The requested date is in the past.")
	}

	latest := domain.AddDays(c.today, prefs.AdvanceBookingDays)
	if date.After(latest) {
		return reject(ReasonTooFarAdvance,
			fmt.Sprintf("Bookings can only be made up to %d days in advance.", prefs.AdvanceBookingDays))
	}

	if domain.IsSameDay(date, c.today) && !startTime.IsAfter(c.now) {
		return reject(ReasonInPast, "The requested time has already passed.")
	}

	return nil
}

// validateWorkingHours шаг 4: время в полуоткрытом окне [start, end)
func validateWorkingHours(startTime types.TimeString, prefs domain.BookingPreferences) *RejectionError {
	if !prefs.WorkingHours.Contains(startTime) {
		return reject(ReasonOutsideHours, fmt.Sprintf("The shop accepts bookings between %s and %s.",
			prefs.WorkingHours.Start, prefs.WorkingHours.End))
	}
	return nil
}

// validatePhone шаг 7: телефон, если мастерская его требует
func validatePhone(phone *string, prefs domain.BookingPreferences) *RejectionError {
	if prefs.RequirePhone && (phone == nil || strings.TrimSpace(*phone) == "") {
		return reject(ReasonPhoneRequired, "This shop requires a phone number for bookings.")
	}
	return nil
}
