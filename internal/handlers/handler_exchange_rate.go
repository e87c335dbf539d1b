package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/invodesk/invoice_analytics_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.RateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/:from/:to", h.getRate)
	}
}

// getRate godoc
// @Summary Get an exchange rate
// @Description Returns the current rate for a currency pair, served from the cache when fresh
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.RateQuoteResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	logger = logger.With(slog.String("from", fromCode), slog.String("to", toCode))

	quote, err := h.rateService.GetRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Invalid currency pair", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("Exchange rate unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate provider unavailable"})
		default:
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate retrieved", slog.String("source", string(quote.Source)))
	c.JSON(http.StatusOK, dto.ToRateQuoteResponse(quote))
}
