package create_booking

import (
	"context"
	"time"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

// notifyTimeout время на постановку уведомлений в очередь после ответа клиенту
const notifyTimeout = 10 * time.Second

// notifyAsync ставит уведомления в очередь в отдельной горутине.
// Ошибки только логируются: бронирование уже зафиксировано и не откатывается
func (uc *UseCase) notifyAsync(ctx context.Context, booking *domain.Booking, shop *domain.Shop) {
	if uc.notifier == nil {
		return
	}

	// Отмена запроса клиентом не должна отменять уведомления
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		defer cancel()

		if err := uc.notifier.NotifyCustomer(notifyCtx, booking, shop); err != nil {
			uc.logger.Error("CreateBooking: failed to notify customer for booking=%s: %v", booking.ID, err)
		}

		if booking.Status == domain.StatusPending {
			if err := uc.notifier.NotifyShop(notifyCtx, booking, shop); err != nil {
				uc.logger.Error("CreateBooking: failed to notify shop=%s for booking=%s: %v", shop.ID, booking.ID, err)
			}
		}
	}()
}

// Wait дожидается уже запущенных уведомлений (graceful shutdown, тесты)
func (uc *UseCase) Wait() {
	uc.pending.Wait()
}
