package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ahmadnk31/fixwise/internal/domain"
	bookingRepo "github.com/ahmadnk31/fixwise/internal/infra/storage/booking"
	"github.com/ahmadnk31/fixwise/internal/service/bookings/models"
	"github.com/ahmadnk31/fixwise/internal/service/preferences"
)

// Service сервис для работы с бронированиями мастерской.
// Все операции доступны только владельцу мастерской
type Service struct {
	bookingRepo BookingRepository
	shops       ShopProvider
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	shops ShopProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		shops:       shops,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerAccess(ctx, booking.ShopID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetShopBookings получает бронирования мастерской с фильтрацией
// по периоду, статусу и включению неактивных бронирований
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest) (*models.BookingListResponse, error) {
	var logMsg strings.Builder
	fmt.Fprintf(&logMsg, "GetShopBookings: fetching bookings for shop=%s, user=%s", req.ShopID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		fmt.Fprintf(&logMsg, ", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		fmt.Fprintf(&logMsg, ", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg.WriteString(", includeInactive=true")
	}
	s.logger.Info("%s", logMsg.String())

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid filter for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.checkOwnerAccess(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: successfully fetched %d bookings for shop=%s", len(bookings), req.ShopID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус.
//
// Допустимы pending -> confirmed|cancelled и confirmed -> completed|cancelled,
// completed и cancelled конечные. Отмена сразу освобождает место в слоте и дне.
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s", bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Booking
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if err := s.checkOwnerAccess(txCtx, booking.ShopID, req.UserID); err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%s cannot move from %s to %s", bookingID, booking.Status, newStatus)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		updated, err = s.getBooking(txCtx, "UpdateStatus", bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkOwnerAccess проверяет, что пользователь владелец мастерской
func (s *Service) checkOwnerAccess(ctx context.Context, shopID uuid.UUID, userID uuid.UUID) error {
	shop, err := s.shops.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, preferences.ErrShopNotFound) {
			s.logger.Warn("checkOwnerAccess: shop=%s not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get shop=%s: %v", shopID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get shop: %v", ErrInternal, err)
	}

	if !shop.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%s is not the owner of shop=%s", userID, shopID)
		return ErrAccessDenied
	}

	return nil
}
