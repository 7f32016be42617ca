package booking

import (
	"errors"
	"net/http"
	"strconv"

	"courtbook/internal/domain"
	"courtbook/internal/modules/schedule"
	"courtbook/internal/modules/voucher"
	"courtbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/users/me/bookings", h.GetMyBookings)

	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)
}

// RegisterStaffRoutes mounts the front-desk lifecycle endpoints.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/bookings/:id/check-in", h.CheckIn)
	rg.PATCH("/bookings/:id/check-out", h.CheckOut)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	b, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toBookingResponse(b))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}

	userID := c.GetInt64("user_id")
	role := domain.Role(c.GetString("role"))
	b, err := h.service.CancelBooking(c.Request.Context(), userID, role, id, req.Reason)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, domain.BookingPlaying)
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, domain.BookingCompleted)
}

func (h *Handler) transition(c *gin.Context, to domain.BookingStatus) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, to)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toBookingResponse(b))
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.GetMyBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}

	out := make([]BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toBookingResponse(&rows[i]))
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "start/end must form a valid HH:MM range")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrCourtNotFound), errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or court not found")
	case errors.Is(err, ErrCourtUnavailable):
		response.Error(c, http.StatusConflict, "COURT_UNAVAILABLE", "Court is not operational")
	case errors.Is(err, schedule.ErrNoPriceAvailable):
		response.Error(c, http.StatusUnprocessableEntity, "NO_PRICE_AVAILABLE", "No price schedule covers the requested range")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_NO_LONGER_AVAILABLE", "Slot is no longer available; please pick again")
	case errors.Is(err, ErrBusy):
		response.Error(c, http.StatusServiceUnavailable, "BUSY", "Could not acquire the slot lock; retry shortly")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this booking")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Booking cannot move to the requested status")
	case errors.Is(err, ErrCancellationWindowClosed):
		response.Error(c, http.StatusUnprocessableEntity, "CANCELLATION_WINDOW_CLOSED", "Too close to start time to cancel")
	default:
		if code, status := voucherErrorCode(err); code != "" {
			response.Error(c, status, code, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}

func voucherErrorCode(err error) (string, int) {
	switch {
	case errors.Is(err, voucher.ErrNotFound):
		return "VOUCHER_NOT_FOUND", http.StatusNotFound
	case errors.Is(err, voucher.ErrNotYetStarted):
		return "VOUCHER_NOT_YET_STARTED", http.StatusUnprocessableEntity
	case errors.Is(err, voucher.ErrExpired):
		return "VOUCHER_EXPIRED", http.StatusUnprocessableEntity
	case errors.Is(err, voucher.ErrNotApplicable):
		return "VOUCHER_NOT_APPLICABLE", http.StatusUnprocessableEntity
	case errors.Is(err, voucher.ErrBelowMinimum):
		return "VOUCHER_BELOW_MINIMUM", http.StatusUnprocessableEntity
	case errors.Is(err, voucher.ErrPerUserLimitReached):
		return "VOUCHER_PER_USER_LIMIT", http.StatusUnprocessableEntity
	case errors.Is(err, voucher.ErrLimitReached):
		return "VOUCHER_LIMIT_REACHED", http.StatusUnprocessableEntity
	}
	return "", 0
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		CourtID:        b.CourtID,
		Date:           b.BookingDate.Format("2006-01-02"),
		StartTime:      b.StartMin.String(),
		EndTime:        b.EndMin.String(),
		DurationMin:    b.DurationMin,
		CourtPrice:     b.CourtPrice,
		ServiceFee:     b.ServiceFee,
		DiscountAmount: b.DiscountAmount,
		TotalPrice:     b.TotalPrice,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
	}
}
