package notifier

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ahmadnk31/fixwise/internal/domain"
)

const (
	TypeNotifyCustomer = "booking:notify_customer"
	TypeNotifyShop     = "booking:notify_shop"
)

// BookingPayload снимок бронирования и мастерской на момент создания.
// Воркер не ходит в БД, все нужное для письма лежит в задаче
type BookingPayload struct {
	BookingID     uuid.UUID `json:"bookingId"`
	ShopID        uuid.UUID `json:"shopId"`
	ShopName      string    `json:"shopName"`
	ShopEmail     string    `json:"shopEmail"`
	BookingDate   string    `json:"bookingDate"`
	StartTime     string    `json:"startTime"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// NewBookingPayload собирает payload из бронирования и мастерской
func NewBookingPayload(booking *domain.Booking, shop *domain.Shop) BookingPayload {
	p := BookingPayload{
		BookingID:     booking.ID,
		ShopID:        shop.ID,
		ShopName:      shop.Name,
		ShopEmail:     shop.Email,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
		Status:        string(booking.Status),
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
	}
	if booking.CustomerPhone != nil {
		p.CustomerPhone = *booking.CustomerPhone
	}
	if booking.Notes != nil {
		p.Notes = *booking.Notes
	}
	return p
}

func newTask(taskType string, payload BookingPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}

// taskID ключ дедупликации: одно уведомление каждого типа на бронирование
func taskID(taskType string, bookingID uuid.UUID) string {
	return taskType + ":" + bookingID.String()
}
