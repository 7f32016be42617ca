package catalog

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/facilities", h.ListFacilities)
	rg.GET("/facilities/:id", h.GetFacility)
	rg.GET("/facilities/:id/courts", h.ListCourts)
	rg.GET("/products", h.ListProducts)
}

func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.service.ListFacilities(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load facilities")
		return
	}
	response.Success(c, http.StatusOK, facilities)
}

func (h *Handler) GetFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility id")
		return
	}

	f, err := h.service.GetFacility(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Facility not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load facility")
		return
	}
	response.Success(c, http.StatusOK, f)
}

func (h *Handler) ListCourts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facility id")
		return
	}

	courts, err := h.service.ListCourts(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Facility not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load courts")
		return
	}
	response.Success(c, http.StatusOK, courts)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load products")
		return
	}
	response.Success(c, http.StatusOK, products)
}
