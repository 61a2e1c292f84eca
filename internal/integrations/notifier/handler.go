package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/integrations/mailer"
)

// Handler обрабатывает задачи уведомлений в воркере
type Handler struct {
	mailer Mailer
	from   string
	logger Logger
}

// NewHandler создает обработчик задач. from адрес отправителя писем
func NewHandler(m Mailer, from string, logger Logger) *Handler {
	return &Handler{mailer: m, from: from, logger: logger}
}

// Register регистрирует обработчики в mux воркера
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeNotifyCustomer, h.HandleNotifyCustomer)
	mux.HandleFunc(TypeNotifyShop, h.HandleNotifyShop)
}

// HandleNotifyCustomer отправляет клиенту подтверждение или уведомление о заявке
func (h *Handler) HandleNotifyCustomer(ctx context.Context, task *asynq.Task) error {
	p, err := decodePayload(task)
	if err != nil {
		h.logger.Error("Notifier: %v", err)
		return err
	}

	return h.send(ctx, task.Type(), p, customerMessage(h.from, p))
}

// HandleNotifyShop сообщает мастерской о новой заявке, ожидающей подтверждения
func (h *Handler) HandleNotifyShop(ctx context.Context, task *asynq.Task) error {
	p, err := decodePayload(task)
	if err != nil {
		h.logger.Error("Notifier: %v", err)
		return err
	}

	if p.ShopEmail == "" {
		h.logger.Warn("Notifier: shop=%s has no email, dropping %s", p.ShopID, task.Type())
		return nil
	}

	return h.send(ctx, task.Type(), p, shopMessage(h.from, p))
}

func (h *Handler) send(ctx context.Context, taskType string, p BookingPayload, msg *mailer.Message) error {
	id, err := h.mailer.Send(ctx, msg)
	if err != nil {
		h.logger.Error("Notifier: %s for booking=%s failed: %v", taskType, p.BookingID, err)
		// Отклоненное письмо не отправится и при повторе
		if errors.Is(err, mailer.ErrInvalidRequest) {
			return fmt.Errorf("%w: %v: %w", ErrSend, err, asynq.SkipRetry)
		}
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	h.logger.Info("Notifier: %s for booking=%s sent, email id=%s", taskType, p.BookingID, id)
	return nil
}

func decodePayload(task *asynq.Task) (BookingPayload, error) {
	var p BookingPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("%w: %s: %v: %w", ErrInvalidPayload, task.Type(), err, asynq.SkipRetry)
	}
	return p, nil
}

func customerMessage(from string, p BookingPayload) *mailer.Message {
	var subject, lead string
	if p.Status == string(domain.StatusConfirmed) {
		subject = fmt.Sprintf("Your booking at %s is confirmed", p.ShopName)
		lead = fmt.Sprintf("Your repair appointment at %s is confirmed.", p.ShopName)
	} else {
		subject = fmt.Sprintf("Booking request sent to %s", p.ShopName)
		lead = fmt.Sprintf("%s has received your booking request and will confirm it shortly.", p.ShopName)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n%s\n\n", p.CustomerName, lead)
	fmt.Fprintf(&body, "Date: %s\nTime: %s\nReference: %s\n", p.BookingDate, p.StartTime, p.BookingID)

	return &mailer.Message{
		From:    from,
		To:      []string{p.CustomerEmail},
		ReplyTo: p.ShopEmail,
		Subject: subject,
		Text:    body.String(),
	}
}

func shopMessage(from string, p BookingPayload) *mailer.Message {
	var body strings.Builder
	fmt.Fprintf(&body, "New booking request for %s.\n\n", p.ShopName)
	fmt.Fprintf(&body, "Date: %s\nTime: %s\n", p.BookingDate, p.StartTime)
	fmt.Fprintf(&body, "Customer: %s <%s>\n", p.CustomerName, p.CustomerEmail)
	if p.CustomerPhone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", p.CustomerPhone)
	}
	if p.Notes != "" {
		fmt.Fprintf(&body, "Notes: %s\n", p.Notes)
	}
	fmt.Fprintf(&body, "\nThe booking is waiting for your confirmation. Reference: %s\n", p.BookingID)

	return &mailer.Message{
		From:    from,
		To:      []string{p.ShopEmail},
		ReplyTo: p.CustomerEmail,
		Subject: fmt.Sprintf("New booking request: %s at %s", p.BookingDate, p.StartTime),
		Text:    body.String(),
	}
}
