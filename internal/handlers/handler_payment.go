package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/core/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/anatoliatours/cashledger/internal/utils/cashcalc"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payment records.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers routes related to payment records.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.registerPayment)
		payments.GET("/:id", h.getPayment)
		payments.GET("", h.listPayments)
		payments.POST("/:id/collect", h.markCollected)
	}
}

// registerPayment godoc
// @Summary Register a payment
// @Description Registers a payment received against a cari, deriving commission and net amounts
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RegisterPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to register payment"
// @Router /payments [post]
func (h *paymentHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := requestUserID(c)
	logger.Info("Received request to register payment",
		slog.String("cari_id", req.CariID),
		slog.String("method", string(req.Method)),
	)

	payment, err := h.paymentService.RegisterPayment(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrAccountInactive),
			errors.Is(err, services.ErrCurrencyMismatch),
			errors.Is(err, services.ErrAccountNotFound):
			logger.Warn("Validation error registering payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to register payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register payment"})
		}
		return
	}

	logger.Info("Payment registered successfully", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, paymentWithSettlement(payment))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves a payment record with its current settlement classification
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			logger.Error("Failed to get payment from service", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, paymentWithSettlement(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Retrieves a token-paginated list of payment records, newest first
// @Tags payments
// @Produce  json
// @Param   limit query int false "Max payments to return" default(20)
// @Param   nextToken query string false "Pagination cursor from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list payments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// markCollected godoc
// @Summary Mark a check collected
// @Description Performs the explicit collected transition on a check/promissory record
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Payment is not a check/promissory record"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Check already collected"
// @Failure 500 {object} map[string]string "Failed to mark payment collected"
// @Router /payments/{id}/collect [post]
func (h *paymentHandler) markCollected(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("id")
	userID := requestUserID(c)

	payment, err := h.paymentService.MarkCollected(c.Request.Context(), paymentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to mark payment collected", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark payment collected"})
		}
		return
	}

	logger.Info("Payment marked collected", slog.String("payment_id", paymentID))
	c.JSON(http.StatusOK, paymentWithSettlement(payment))
}

// paymentWithSettlement builds the response DTO and attaches the record's
// settlement state as of today.
func paymentWithSettlement(payment *domain.PaymentRecord) dto.PaymentResponse {
	resp := dto.ToPaymentResponse(payment)
	settlement := cashcalc.Classify(*payment, time.Now().UTC())
	resp.Settlement = &settlement
	return resp
}
