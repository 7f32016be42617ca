package voucher

import (
	"net/http"

	"courtbook/internal/domain"
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
	rg.POST("/vouchers/evaluate", h.Evaluate)
}

type evaluateRequest struct {
	Code        string  `json:"code" binding:"required"`
	OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
	Scope       string  `json:"scope" binding:"required,oneof=all booking product"`
}

// Evaluate previews the discount a voucher would give. Advisory only; limits
// are re-checked when the booking commits.
func (h *Handler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	res, err := h.service.Evaluate(c.Request.Context(), req.Code, userID, req.OrderAmount, domain.VoucherScope(req.Scope))
	if err != nil {
		code, status := classify(err)
		if code == "" {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to evaluate voucher")
			return
		}
		response.Error(c, status, code, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"voucher_id": res.Voucher.ID,
		"discount":   res.Discount,
	})
}

// classify maps voucher errors to stable API codes. Unknown errors return an
// empty code.
func classify(err error) (string, int) {
	switch err {
	case ErrNotFound:
		return "VOUCHER_NOT_FOUND", http.StatusNotFound
	case ErrNotYetStarted:
		return "VOUCHER_NOT_YET_STARTED", http.StatusUnprocessableEntity
	case ErrExpired:
		return "VOUCHER_EXPIRED", http.StatusUnprocessableEntity
	case ErrNotApplicable:
		return "VOUCHER_NOT_APPLICABLE", http.StatusUnprocessableEntity
	case ErrBelowMinimum:
		return "VOUCHER_BELOW_MINIMUM", http.StatusUnprocessableEntity
	case ErrPerUserLimitReached:
		return "VOUCHER_PER_USER_LIMIT", http.StatusUnprocessableEntity
	case ErrLimitReached:
		return "VOUCHER_LIMIT_REACHED", http.StatusUnprocessableEntity
	}
	return "", 0
}
