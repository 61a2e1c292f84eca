package create_booking

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	createBooking "github.com/ahmadnk31/fixwise/internal/usecase/create_booking"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID      string  `json:"shopId"`
	Date        string  `json:"date"` // "2026-03-11"
	Time        string  `json:"time"` // "10:00"
	DiagnosisID *string `json:"diagnosisId,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	ShopID        string  `json:"shopId"`
	DiagnosisID   *string `json:"diagnosisId,omitempty"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	AutoConfirmed bool    `json:"autoConfirmed"`
	Message       string  `json:"message"`
	CreatedAt     string  `json:"createdAt"`
}

// RejectionResponse тело ответа при отказе (400) или конфликте (409)
type RejectionResponse struct {
	Code             int      `json:"code"`
	Reason           string   `json:"reason"`
	Message          string   `json:"message"`
	AlternativeDates []string `json:"alternativeDates,omitempty"`
	AlternativeTimes []string `json:"alternativeTimes,omitempty"`
}

var (
	errInvalidShopID      = errors.New("invalid shopId")
	errInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	errInvalidDiagnosisID = errors.New("invalid diagnosisId")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые поля передаются как есть: их отсутствие проверяет use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		StartTime:     types.TimeString(strings.TrimSpace(r.Time)),
		CustomerName:  strings.TrimSpace(r.Name),
		CustomerEmail: strings.TrimSpace(r.Email),
		CustomerPhone: trimmed(r.Phone),
		Notes:         r.Notes,
	}

	if s := strings.TrimSpace(r.ShopID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errInvalidShopID
		}
		req.ShopID = id
	}

	if s := strings.TrimSpace(r.Date); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = date
	}

	if s := trimmed(r.DiagnosisID); s != nil {
		id, err := uuid.Parse(*s)
		if err != nil {
			return nil, errInvalidDiagnosisID
		}
		req.DiagnosisID = &id
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:            resp.ID.String(),
		ShopID:        resp.ShopID.String(),
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Notes:         resp.Notes,
		AutoConfirmed: resp.AutoConfirmed,
		Message:       resp.Message,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.DiagnosisID != nil {
		id := resp.DiagnosisID.String()
		out.DiagnosisID = &id
	}
	return out
}

// FromRejection конвертирует отказ use case в HTTP статус и тело ответа
func FromRejection(rej *createBooking.RejectionError) (int, *RejectionResponse) {
	status := http.StatusBadRequest
	if rej.IsConflict() {
		status = http.StatusConflict
	}

	out := &RejectionResponse{
		Code:    status,
		Reason:  string(rej.Reason),
		Message: rej.Message,
	}
	for _, d := range rej.AlternativeDates {
		out.AlternativeDates = append(out.AlternativeDates, d.Format(domain.DateFormat))
	}
	for _, t := range rej.AlternativeTimes {
		out.AlternativeTimes = append(out.AlternativeTimes, t.String())
	}
	return status, out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
