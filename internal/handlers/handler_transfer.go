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

// transferHandler handles HTTP requests related to same-currency transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("/:id", h.getTransfer)
		transfers.GET("", h.listTransfers)
	}
}

// createTransfer godoc
// @Summary Transfer between two accounts
// @Description Moves an amount between two same-currency accounts, atomically
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create transfer"
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := requestUserID(c)
	logger.Info("Received request to create transfer",
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("target_account_id", req.TargetAccountID),
	)

	record, err := h.transferService.CreateTransfer(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrSameAccount),
			errors.Is(err, services.ErrAccountInactive),
			errors.Is(err, services.ErrCurrencyMismatch):
			logger.Warn("Validation error creating transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create transfer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transfer"})
		}
		return
	}

	logger.Info("Transfer created successfully", slog.String("transfer_id", record.TransferID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(record))
}

// getTransfer godoc
// @Summary Get a transfer by ID
// @Description Retrieves a specific transfer record by its ID
// @Tags transfers
// @Produce  json
// @Param   id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transfer"
// @Router /transfers/{id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transferID := c.Param("id")

	record, err := h.transferService.GetTransferByID(c.Request.Context(), transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		} else {
			logger.Error("Failed to get transfer from service", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(record))
}

// listTransfers godoc
// @Summary List transfers
// @Description Retrieves a paginated list of transfer records, newest first
// @Tags transfers
// @Produce  json
// @Param   limit query int false "Max transfers to return" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list transfers"
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	records, err := h.transferService.ListTransfers(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transfers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transfers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponses(records))
}
