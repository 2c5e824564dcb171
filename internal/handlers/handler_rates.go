package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to the exchange-rate snapshot.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to the rate snapshot.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.PUT("", h.setRates)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getRates godoc
// @Summary Get the current rate snapshot
// @Description Retrieves the rate table currently used for TRY conversions
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateTableResponse
// @Router /rates [get]
func (h *rateHandler) getRates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToRateTableResponse(h.rateService.Snapshot()))
}

// setRates godoc
// @Summary Set exchange rates manually
// @Description Replaces the rate snapshot with manually supplied rates against TRY
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rates body dto.UpdateRatesRequest true "Rates against TRY, per currency"
// @Success 200 {object} dto.RateTableResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to set rates"
// @Router /rates [put]
func (h *rateHandler) setRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := requestUserID(c)
	table, err := h.rateService.SetRates(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting rates", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set rates"})
		}
		return
	}

	logger.Info("Rates set manually", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}

// refreshRates godoc
// @Summary Refresh rates from the external provider
// @Description Pulls fresh rates from the configured provider and swaps the snapshot
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateTableResponse
// @Failure 502 {object} map[string]string "Rate provider unavailable"
// @Router /rates/refresh [post]
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.rateService.Refresh(c.Request.Context()); err != nil {
		logger.Error("Failed to refresh rates from provider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh rates from provider"})
		return
	}

	logger.Info("Rates refreshed from provider")
	c.JSON(http.StatusOK, dto.ToRateTableResponse(h.rateService.Snapshot()))
}
