package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/modules/schedule"
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
	rg.GET("/facilities/:id/courts/:courtId/availability", h.GetAvailability)
	rg.GET("/price/quote", h.QuotePrice)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	facilityID, err1 := strconv.ParseInt(c.Param("id"), 10, 64)
	courtID, err2 := strconv.ParseInt(c.Param("courtId"), 10, 64)
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility or court id")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	day, err := h.service.GetAvailability(c.Request.Context(), facilityID, courtID, date)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Court not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}
	response.Success(c, http.StatusOK, day)
}

func (h *Handler) QuotePrice(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Query("facility_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility id")
		return
	}
	courtType := c.Query("court_type")
	if courtType == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "court_type is required")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	req, err := parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "start/end must form a valid HH:MM range")
		return
	}

	price, err := h.service.QuotePrice(c.Request.Context(), facilityID, courtType, date, req)
	if err != nil {
		if errors.Is(err, schedule.ErrNoPriceAvailable) {
			response.Error(c, http.StatusNotFound, "NO_PRICE_AVAILABLE", "No price schedule covers the requested range")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to quote price")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"price": price})
}

func parseRange(startStr, endStr string) (domain.TimeInterval, error) {
	start, err := domain.ParseTimeOfDay(startStr)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	end, err := domain.ParseTimeOfDay(endStr)
	if err != nil {
		return domain.TimeInterval{}, err
	}
	return domain.NewTimeInterval(start, end)
}
