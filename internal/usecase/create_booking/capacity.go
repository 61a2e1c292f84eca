package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/service/scheduling"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// checkDayCapacity шаг 5: лимит на день. При отказе предлагает до трех дат из
// следующих DayAlternativesLookaheadDays дней, на которые нет известных бронирований
func (uc *UseCase) checkDayCapacity(
	ctx context.Context,
	shopID uuid.UUID,
	date time.Time,
	prefs domain.BookingPreferences,
	c clock,
) (*RejectionError, error) {
	count, err := uc.bookingRepo.CountActive(ctx, shopID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count day bookings: %v", ErrInternal, err)
	}

	if count < prefs.MaxBookingsPerDay {
		return nil, nil
	}

	uc.logger.Warn("CreateBooking: day %s is full for shop=%s, %d/%d bookings",
		date.Format(domain.DateFormat), shopID, count, prefs.MaxBookingsPerDay)

	busy, err := uc.bookingRepo.ListUpcomingDates(ctx, shopID, domain.AddDays(date, 1), domain.UpcomingDatesListingLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list upcoming dates: %v", ErrInternal, err)
	}

	latest := domain.AddDays(c.today, prefs.AdvanceBookingDays)
	alternatives := scheduling.FindAlternativeDates(
		date,
		busy,
		domain.DayAlternativesLookaheadDays,
		domain.MaxAlternatives,
		latest,
	)

	rejection := reject(ReasonDayFull, "This shop is fully booked on the requested date.")
	rejection.AlternativeDates = alternatives
	return rejection, nil
}

// checkSlotCapacity шаг 6: лимит на слот (предварительная проверка)
func (uc *UseCase) checkSlotCapacity(
	ctx context.Context,
	shopID uuid.UUID,
	date time.Time,
	startTime types.TimeString,
	prefs domain.BookingPreferences,
	c clock,
) (*RejectionError, error) {
	count, err := uc.bookingRepo.CountActiveAtSlot(ctx, shopID, date, startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count slot bookings: %v", ErrInternal, err)
	}

	if count < prefs.MaxBookingsPerSlot {
		return nil, nil
	}

	uc.logger.Warn("CreateBooking: slot %s %s is full for shop=%s, %d/%d bookings",
		date.Format(domain.DateFormat), startTime, shopID, count, prefs.MaxBookingsPerSlot)

	alternatives, err := uc.alternativeTimes(ctx, shopID, date, startTime, prefs, c)
	if err != nil {
		return nil, err
	}

	rejection := reject(ReasonSlotFull, "The requested time slot is already booked.")
	rejection.AlternativeTimes = alternatives
	return rejection, nil
}

// alternativeTimes подбирает свободные слоты рядом с запрошенным по текущим данным.
// Занятым считается слот, заполненный до maxBookingsPerSlot
func (uc *UseCase) alternativeTimes(
	ctx context.Context,
	shopID uuid.UUID,
	date time.Time,
	startTime types.TimeString,
	prefs domain.BookingPreferences,
	c clock,
) ([]types.TimeString, error) {
	counts, err := uc.bookingRepo.CountActiveByTime(ctx, shopID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load booked times: %v", ErrInternal, err)
	}

	booked := make([]types.TimeString, 0, len(counts))
	for t, n := range counts {
		if n >= prefs.MaxBookingsPerSlot {
			booked = append(booked, t)
		}
	}

	grid, err := scheduling.GenerateSlots(prefs.WorkingHours.Start, prefs.WorkingHours.End, prefs.SlotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	// На сегодня не предлагаем слоты, которые уже начались
	if domain.IsSameDay(date, c.today) {
		upcoming := make([]types.TimeString, 0, len(grid))
		for _, slot := range grid {
			if slot.IsAfter(c.now) {
				upcoming = append(upcoming, slot)
			}
		}
		grid = upcoming
	}

	return scheduling.FindAlternatives(startTime, booked, grid, prefs.BufferTimeMinutes, domain.MaxAlternatives), nil
}
