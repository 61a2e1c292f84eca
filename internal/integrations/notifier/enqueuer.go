package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

// Options параметры постановки задач
type Options struct {
	Queue    string
	MaxRetry int
	Timeout  time.Duration
}

// Enqueuer ставит уведомления о бронированиях в очередь asynq
type Enqueuer struct {
	client TaskClient
	opts   Options
	logger Logger
}

// NewEnqueuer создает новый экземпляр Enqueuer
func NewEnqueuer(client TaskClient, opts Options, logger Logger) *Enqueuer {
	if opts.Queue == "" {
		opts.Queue = "default"
	}
	return &Enqueuer{client: client, opts: opts, logger: logger}
}

// NotifyCustomer ставит в очередь письмо клиенту
func (e *Enqueuer) NotifyCustomer(ctx context.Context, booking *domain.Booking, shop *domain.Shop) error {
	return e.enqueue(ctx, TypeNotifyCustomer, NewBookingPayload(booking, shop))
}

// NotifyShop ставит в очередь письмо мастерской о новой заявке
func (e *Enqueuer) NotifyShop(ctx context.Context, booking *domain.Booking, shop *domain.Shop) error {
	if shop.Email == "" {
		e.logger.Warn("Notifier: shop=%s has no email, skipping %s for booking=%s", shop.ID, TypeNotifyShop, booking.ID)
		return nil
	}
	return e.enqueue(ctx, TypeNotifyShop, NewBookingPayload(booking, shop))
}

func (e *Enqueuer) enqueue(ctx context.Context, taskType string, payload BookingPayload) error {
	task, err := newTask(taskType, payload)
	if err != nil {
		return fmt.Errorf("%w: %s - encode payload: %v", ErrEnqueue, taskType, err)
	}

	opts := []asynq.Option{
		asynq.Queue(e.opts.Queue),
		asynq.MaxRetry(e.opts.MaxRetry),
		asynq.TaskID(taskID(taskType, payload.BookingID)),
	}
	if e.opts.Timeout > 0 {
		opts = append(opts, asynq.Timeout(e.opts.Timeout))
	}

	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		e.logger.Info("Notifier: %s for booking=%s already queued", taskType, payload.BookingID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s - booking=%s: %v", ErrEnqueue, taskType, payload.BookingID, err)
	}

	e.logger.Info("Notifier: enqueued %s id=%s queue=%s for booking=%s", taskType, info.ID, info.Queue, payload.BookingID)
	return nil
}
