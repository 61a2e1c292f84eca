package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	getAvailableSlots "github.com/ahmadnk31/fixwise/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	ShopID       string          `json:"shopId"`
	WorkingHours WorkingHours    `json:"workingHours"`
	DayFull      bool            `json:"dayFull"`
	Slots        []AvailableSlot `json:"slots"`
}

// WorkingHours рабочие часы мастерской
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		}
	}

	return &AvailableSlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		ShopID: resp.ShopID.String(),
		WorkingHours: WorkingHours{
			Start: resp.WorkingHours.Start.String(),
			End:   resp.WorkingHours.End.String(),
		},
		DayFull: resp.DayFull,
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(shopID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ShopID: shopID,
		Date:   date,
	}, nil
}
