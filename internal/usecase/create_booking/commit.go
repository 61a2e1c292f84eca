package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmadnk31/fixwise/internal/domain"
	bookingRepo "github.com/ahmadnk31/fixwise/internal/infra/storage/booking"
)

// maxCommitAttempts сколько раз повторяется транзакция при ошибке сериализации
const maxCommitAttempts = 3

// errSlotTaken финальная перепроверка внутри транзакции нашла слот заполненным
var errSlotTaken = errors.New("create_booking: slot filled before insert")

// commit финальная перепроверка и вставка в одной SERIALIZABLE транзакции.
//
// Два запроса на последний слот могут оба пройти предварительную проверку.
// Перепроверка под SERIALIZABLE плюс повтор при 40001 гарантирует, что
// вставится не больше maxBookingsPerSlot бронирований. Проигравший получает
// slot_taken_concurrently с альтернативами по текущим данным.
func (uc *UseCase) commit(
	ctx context.Context,
	booking *domain.Booking,
	prefs domain.BookingPreferences,
	c clock,
) (*domain.Booking, error) {
	var created *domain.Booking
	var err error

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		created, err = uc.tryCommit(ctx, booking, prefs)
		if err == nil {
			return created, nil
		}
		if !bookingRepo.IsConflict(err) {
			break
		}
		uc.logger.Warn("CreateBooking: serialization conflict for shop=%s %s %s, attempt %d/%d",
			booking.ShopID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime, attempt, maxCommitAttempts)
	}

	if errors.Is(err, errSlotTaken) || bookingRepo.IsConflict(err) {
		return nil, uc.concurrentConflict(ctx, booking, prefs, c)
	}
	return nil, err
}

func (uc *UseCase) tryCommit(ctx context.Context, booking *domain.Booking, prefs domain.BookingPreferences) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.bookingRepo.CountActiveAtSlot(txCtx, booking.ShopID, booking.BookingDate, booking.StartTime)
		if err != nil {
			if bookingRepo.IsConflict(err) {
				return err
			}
			return fmt.Errorf("%w: final slot recheck: %v", ErrInternal, err)
		}
		if count >= prefs.MaxBookingsPerSlot {
			return errSlotTaken
		}

		// Копия: при повторе транзакции вставляем заново с тем же ID
		candidate := *booking
		created, err = uc.bookingRepo.Create(txCtx, &candidate)
		if err != nil {
			if bookingRepo.IsConflict(err) {
				return err
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})

	return created, err
}

// concurrentConflict формирует ответ 409 с альтернативами по свежим данным.
// Если альтернативы посчитать не удалось, конфликт возвращается без них
func (uc *UseCase) concurrentConflict(
	ctx context.Context,
	booking *domain.Booking,
	prefs domain.BookingPreferences,
	c clock,
) *RejectionError {
	uc.logger.Warn("CreateBooking: slot %s %s taken concurrently for shop=%s",
		booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.ShopID)

	rejection := reject(ReasonSlotTakenConcurrently,
		"Sorry, this time slot was just booked by someone else. Please choose another time.")

	alternatives, err := uc.alternativeTimes(ctx, booking.ShopID, booking.BookingDate, booking.StartTime, prefs, c)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to recompute alternatives after conflict: %v", err)
		return rejection
	}

	rejection.AlternativeTimes = alternatives
	return rejection
}
