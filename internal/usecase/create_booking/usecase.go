package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/internal/service/preferences"
)

// Исходы для счетчика booking_outcomes_total
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

// UseCase use case для создания бронирования: проверка правил мастерской,
// подбор альтернатив и фиксация с защитой от гонки
type UseCase struct {
	shops        ShopProvider
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	recorder     OutcomeRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger

	pending sync.WaitGroup
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс, в котором считается "сегодня"; notifier и recorder могут быть nil
func NewUseCase(
	shops ShopProvider,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	recorder OutcomeRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		shops:        shops,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		recorder:     recorder,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет запрос и создает бронирование.
//
// Правила проверяются в фиксированном порядке, сообщается первая нарушенная:
// обязательные поля, запись на сегодня, окно дат, рабочие часы, лимит дня,
// лимит слота, телефон. Отказ возвращается как *RejectionError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: shop=%s, date=%s, time=%s",
		req.ShopID, req.Date.Format(domain.DateFormat), req.StartTime)

	resp, err := uc.execute(ctx, req)
	uc.record(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Обязательные поля
	if rejection := validateRequiredFields(req); rejection != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", rejection)
		return nil, rejection
	}

	date := domain.DateOnly(req.Date)
	startTime, _ := req.StartTime.Normalize()
	c := newClock(uc.timeProvider.Now(), uc.location)

	// Мастерская и ее настройки, разрешенные один раз на весь запрос
	shop, err := uc.shops.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, preferences.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop=%s not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateBooking: failed to get shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	prefs := preferences.Resolve(shop.Preferences)

	// 2-4. Правила, не требующие счетчиков
	if rejection := firstRejection(
		func() *RejectionError { return validateSameDay(date, prefs, c) },
		func() *RejectionError { return validateDateWindow(date, startTime, prefs, c) },
		func() *RejectionError { return validateWorkingHours(startTime, prefs) },
	); rejection != nil {
		uc.logger.Warn("CreateBooking: rejected for shop=%s: %v", shop.ID, rejection)
		return nil, rejection
	}

	// 5. Лимит на день
	rejection, err := uc.checkDayCapacity(ctx, shop.ID, date, prefs, c)
	if err != nil {
		uc.logger.Error("CreateBooking: day capacity check failed: %v", err)
		return nil, err
	}
	if rejection != nil {
		return nil, rejection
	}

	// 6. Лимит на слот (предварительная проверка)
	rejection, err = uc.checkSlotCapacity(ctx, shop.ID, date, startTime, prefs, c)
	if err != nil {
		uc.logger.Error("CreateBooking: slot capacity check failed: %v", err)
		return nil, err
	}
	if rejection != nil {
		return nil, rejection
	}

	// 7. Телефон
	if rejection := validatePhone(req.CustomerPhone, prefs); rejection != nil {
		uc.logger.Warn("CreateBooking: rejected for shop=%s: %v", shop.ID, rejection)
		return nil, rejection
	}

	// 8. Финальная перепроверка и вставка
	booking := &domain.Booking{
		ID:            uuid.New(),
		ShopID:        shop.ID,
		DiagnosisID:   req.DiagnosisID,
		BookingDate:   date,
		StartTime:     startTime,
		Status:        domain.InitialStatus(prefs.AutoConfirm),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}

	created, err := uc.commit(ctx, booking, prefs, c)
	if err != nil {
		var rejection *RejectionError
		if !errors.As(err, &rejection) {
			uc.logger.Error("CreateBooking: failed to commit booking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s status=%s", created.ID, created.Status)

	uc.notifyAsync(ctx, created, shop)

	return toResponse(created), nil
}

func firstRejection(checks ...func() *RejectionError) *RejectionError {
	for _, check := range checks {
		if rejection := check(); rejection != nil {
			return rejection
		}
	}
	return nil
}

func (uc *UseCase) record(err error) {
	if uc.recorder == nil {
		return
	}

	var rejection *RejectionError
	switch {
	case err == nil:
		uc.recorder.RecordBookingOutcome(outcomeAccepted, "")
	case errors.As(err, &rejection) && rejection.IsConflict():
		uc.recorder.RecordBookingOutcome(outcomeConflict, string(rejection.Reason))
	case errors.As(err, &rejection):
		uc.recorder.RecordBookingOutcome(outcomeRejected, string(rejection.Reason))
	case errors.Is(err, ErrShopNotFound):
		uc.recorder.RecordBookingOutcome(outcomeRejected, "shop_not_found")
	default:
		uc.recorder.RecordBookingOutcome(outcomeError, "")
	}
}

func toResponse(b *domain.Booking) *Response {
	autoConfirmed := b.Status == domain.StatusConfirmed

	message := fmt.Sprintf("Your booking request for %s at %s has been sent to the shop and is awaiting confirmation.",
		b.BookingDate.Format(domain.DateFormat), b.StartTime)
	if autoConfirmed {
		message = fmt.Sprintf("Your booking for %s at %s is confirmed.",
			b.BookingDate.Format(domain.DateFormat), b.StartTime)
	}

	return &Response{
		ID:            b.ID,
		ShopID:        b.ShopID,
		DiagnosisID:   b.DiagnosisID,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		Status:        string(b.Status),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Notes:         b.Notes,
		AutoConfirmed: autoConfirmed,
		Message:       message,
		CreatedAt:     b.CreatedAt,
	}
}
