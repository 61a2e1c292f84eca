package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/service/preferences"
	"github.com/ahmadnk31/fixwise/internal/service/scheduling"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	shops        ShopProvider
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shops ShopProvider,
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		shops:        shops,
		bookingRepo:  bookingRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, date=%s", req.ShopID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	local := uc.timeProvider.Now().In(uc.location)
	today := domain.DateOnly(local)

	// 2. Мастерская и ее настройки
	shop, err := uc.shops.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, preferences.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop=%s not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	prefs := preferences.Resolve(shop.Preferences)

	resp := &Response{
		Date:         date,
		ShopID:       shop.ID,
		WorkingHours: prefs.WorkingHours,
		Slots:        []domain.AvailableSlot{},
	}

	// 3. На недоступную дату сетка пустая
	if !isBookableDate(date, today, prefs) {
		uc.logger.Info("GetAvailableSlots: date %s is not bookable for shop=%s", date.Format(domain.DateFormat), shop.ID)
		return resp, nil
	}

	// 4. Сетка слотов, на сегодня только еще не начавшиеся
	grid, err := scheduling.GenerateSlots(prefs.WorkingHours.Start, prefs.WorkingHours.End, prefs.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}
	if domain.IsSameDay(date, today) {
		grid = filterUpcoming(grid, types.NewTimeString(local))
	}

	// 5. Загрузка дня и слотов
	dayCount, err := uc.bookingRepo.CountActive(ctx, shop.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	counts, err := uc.bookingRepo.CountActiveByTime(ctx, shop.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings by time: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings by time: %v", ErrInternal, err)
	}

	resp.DayFull = dayCount >= prefs.MaxBookingsPerDay
	resp.Slots = calculateAvailableSpots(grid, prefs.SlotDurationMinutes, counts, prefs.MaxBookingsPerSlot, resp.DayFull)

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%s, date=%s, dayFull=%t",
		len(resp.Slots), shop.ID, date.Format(domain.DateFormat), resp.DayFull)

	return resp, nil
}
