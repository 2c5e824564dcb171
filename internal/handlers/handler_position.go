package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/anatoliatours/cashledger/internal/utils/cashcalc"
	"github.com/gin-gonic/gin"
)

// positionHandler handles HTTP requests for the cash-position report.
type positionHandler struct {
	positionService portssvc.PositionSvcFacade
}

// newPositionHandler creates a new positionHandler.
func newPositionHandler(ps portssvc.PositionSvcFacade) *positionHandler {
	return &positionHandler{
		positionService: ps,
	}
}

// registerPositionRoutes registers the cash-position route.
func registerPositionRoutes(rg *gin.RouterGroup, positionService portssvc.PositionSvcFacade) {
	h := newPositionHandler(positionService)
	rg.GET("/position", h.getPosition)
}

// getPosition godoc
// @Summary Get the multi-currency cash position
// @Description Computes the available/pending cash position per payment bucket, with TRY totals
// @Tags position
// @Produce  json
// @Param   asOf query string false "Position date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.PositionReportResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 500 {object} map[string]string "Failed to compute position"
// @Router /position [get]
func (h *positionHandler) getPosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		// End of the requested day so the whole day's records are included.
		asOf = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	report, err := h.positionService.GetPosition(c.Request.Context(), asOf)
	if err != nil {
		if errors.Is(err, cashcalc.ErrUnknownCurrency) {
			logger.Error("Position fold hit a currency missing from the rate table", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate table is missing a currency; refresh rates and retry"})
			return
		}
		logger.Error("Failed to compute cash position", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute position"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPositionReportResponse(report))
}
