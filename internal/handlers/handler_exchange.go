package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/core/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeHandler handles HTTP requests related to currency exchanges.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

// newExchangeHandler creates a new exchangeHandler.
func newExchangeHandler(es portssvc.ExchangeSvcFacade) *exchangeHandler {
	return &exchangeHandler{
		exchangeService: es,
	}
}

// registerExchangeRoutes registers routes related to currency exchanges.
func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade) {
	h := newExchangeHandler(exchangeService)

	exchanges := rg.Group("/exchanges")
	{
		exchanges.POST("", h.createExchange)
		exchanges.GET("/:id", h.getExchange)
		exchanges.GET("", h.listExchanges)
		exchanges.DELETE("/:id", h.deleteExchange)
	}
}

// createExchange godoc
// @Summary Exchange currency between two accounts
// @Description Debits the source account and credits the target account at the given rate, atomically
// @Tags exchanges
// @Accept  json
// @Produce  json
// @Param   exchange body dto.CreateExchangeRequest true "Exchange details"
// @Success 201 {object} dto.ExchangeResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create exchange"
// @Router /exchanges [post]
func (h *exchangeHandler) createExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := requestUserID(c)
	logger.Info("Received request to create exchange",
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("target_account_id", req.TargetAccountID),
	)

	record, err := h.exchangeService.CreateExchange(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInvalidRate),
			errors.Is(err, services.ErrSameAccount),
			errors.Is(err, services.ErrAccountInactive),
			errors.Is(err, services.ErrCurrencyMismatch):
			logger.Warn("Validation error creating exchange", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create exchange in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exchange"})
		}
		return
	}

	logger.Info("Exchange created successfully", slog.String("exchange_id", record.ExchangeID))
	c.JSON(http.StatusCreated, dto.ToExchangeResponse(record))
}

// getExchange godoc
// @Summary Get an exchange by ID
// @Description Retrieves a specific exchange record by its ID
// @Tags exchanges
// @Produce  json
// @Param   id path string true "Exchange ID"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 404 {object} map[string]string "Exchange not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange"
// @Router /exchanges/{id} [get]
func (h *exchangeHandler) getExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	exchangeID := c.Param("id")

	record, err := h.exchangeService.GetExchangeByID(c.Request.Context(), exchangeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		} else {
			logger.Error("Failed to get exchange from service", slog.String("error", err.Error()), slog.String("exchange_id", exchangeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(record))
}

// listExchanges godoc
// @Summary List exchanges
// @Description Retrieves a paginated list of exchange records, newest first
// @Tags exchanges
// @Produce  json
// @Param   limit query int false "Max exchanges to return" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ExchangeResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list exchanges"
// @Router /exchanges [get]
func (h *exchangeHandler) listExchanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExchangesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	records, err := h.exchangeService.ListExchanges(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list exchanges from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchanges"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponses(records))
}

// deleteExchange godoc
// @Summary Delete an exchange
// @Description Removes an exchange record and reverses both balance legs exactly as stored
// @Tags exchanges
// @Produce  json
// @Param   id path string true "Exchange ID"
// @Success 204 "Exchange deleted and reversed"
// @Failure 404 {object} map[string]string "Exchange not found"
// @Failure 500 {object} map[string]string "Failed to delete exchange"
// @Router /exchanges/{id} [delete]
func (h *exchangeHandler) deleteExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	exchangeID := c.Param("id")
	userID := requestUserID(c)

	if err := h.exchangeService.DeleteExchange(c.Request.Context(), exchangeID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		} else {
			logger.Error("Failed to delete exchange", slog.String("error", err.Error()), slog.String("exchange_id", exchangeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exchange"})
		}
		return
	}

	logger.Info("Exchange deleted and reversed", slog.String("exchange_id", exchangeID))
	c.Status(http.StatusNoContent)
}
