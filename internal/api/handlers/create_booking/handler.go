package create_booking

import (
	"errors"
	"net/http"

	"github.com/ahmadnk31/fixwise/internal/api/handlers"
	createBooking "github.com/ahmadnk31/fixwise/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgShopNotFound       = "shop not found"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondJSON(w, http.StatusBadRequest, &RejectionResponse{
			Code:    http.StatusBadRequest,
			Reason:  string(createBooking.ReasonInvalidInput),
			Message: err.Error(),
		})
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejection *createBooking.RejectionError
		switch {
		case errors.As(err, &rejection):
			status, body := FromRejection(rejection)
			h.logger.Warn("POST /bookings - Rejected: shop_id=%s, date=%s, time=%s, reason=%s",
				req.ShopID, req.Date, req.Time, rejection.Reason)
			handlers.RespondJSON(w, status, body)

		case errors.Is(err, createBooking.ErrShopNotFound):
			h.logger.Warn("POST /bookings - Shop not found: shop_id=%s", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: shop_id=%s, error=%v", req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, shop_id=%s, status=%s",
		result.ID, result.ShopID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
