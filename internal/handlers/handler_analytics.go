package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/invodesk/invoice_analytics_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles HTTP requests for revenue analytics.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

// newAnalyticsHandler creates a new analyticsHandler.
func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers routes related to analytics.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)

	analytics := rg.Group("/analytics")
	{
		analytics.POST("/total-revenue", h.totalRevenue)
		analytics.POST("/average-invoice", h.averageInvoice)
	}
}

// totalRevenue godoc
// @Summary Total revenue
// @Description Sums matching invoices in the target currency using current exchange rates
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   filters body dto.AnalyticsRequest true "Filters"
// @Success 200 {object} dto.TotalRevenueResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Failure 500 {object} map[string]string "Failed to compute total revenue"
// @Router /analytics/total-revenue [post]
func (h *analyticsHandler) totalRevenue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TotalRevenue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.analyticsService.TotalRevenue(c.Request.Context(), req)
	if err != nil {
		respondInvoiceError(c, logger, err, "Failed to compute total revenue")
		return
	}

	c.JSON(http.StatusOK, result)
}

// averageInvoice godoc
// @Summary Average invoice size
// @Description Computes the mean invoice size in the target currency using current exchange rates
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   filters body dto.AnalyticsRequest true "Filters"
// @Success 200 {object} dto.AverageInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Failure 500 {object} map[string]string "Failed to compute average invoice size"
// @Router /analytics/average-invoice [post]
func (h *analyticsHandler) averageInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AverageInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.analyticsService.AverageInvoice(c.Request.Context(), req)
	if err != nil {
		respondInvoiceError(c, logger, err, "Failed to compute average invoice size")
		return
	}

	c.JSON(http.StatusOK, result)
}
