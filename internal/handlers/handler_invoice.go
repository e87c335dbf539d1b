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

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Adds a new invoice, converting its amount to the default currency via the rate cache
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input or deleted customer"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create invoice",
		slog.String("customer_id", req.CustomerID),
		slog.String("currency", req.Currency),
	)

	createdInvoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondInvoiceError(c, logger, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", createdInvoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(createdInvoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves non-deleted invoices, optionally filtered by customer
// @Tags invoices
// @Produce  json
// @Param   customerID query string false "Filter by customer ID"
// @Param   limit query int false "Max results (default 100)"
// @Param   offset query int false "Results to skip (default 0)"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pagingParams(c)

	var customerID *string
	if id := c.Query("customerID"); id != "" {
		customerID = &id
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves a specific non-deleted invoice by ID
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates an invoice's amount and/or currency and recomputes the converted amount
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input or deleted invoice"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updatedInvoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondInvoiceError(c, logger, err, "Failed to update invoice")
		return
	}

	logger.Info("Invoice updated successfully")
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(updatedInvoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Soft deletes an invoice by ID
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invoice already deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")
	logger = logger.With(slog.String("invoice_id", invoiceID))

	err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondInvoiceError(c, logger, err, "Failed to delete invoice")
		return
	}

	logger.Info("Invoice deleted successfully")
	c.Status(http.StatusNoContent)
}

// respondInvoiceError maps service errors from invoice operations onto HTTP
// responses. Rate provider outages surface as 503 so callers can retry.
func respondInvoiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateUnavailable):
		logger.Warn("Exchange rate unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate provider unavailable"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
