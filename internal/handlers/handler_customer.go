package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/invodesk/invoice_analytics_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: cs,
	}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Create a new customer
// @Description Adds a new customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create customer"
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	createdCustomer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create customer in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	logger.Info("Customer created successfully", slog.String("customer_id", createdCustomer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(createdCustomer))
}

// listCustomers godoc
// @Summary List customers
// @Description Retrieves non-deleted customers with limit/offset paging
// @Tags customers
// @Produce  json
// @Param   limit query int false "Max results (default 100)"
// @Param   offset query int false "Results to skip (default 0)"
// @Success 200 {array} dto.CustomerResponse
// @Failure 500 {object} map[string]string "Failed to list customers"
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pagingParams(c)

	customers, err := h.customerService.ListCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list customers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer
// @Description Retrieves a specific non-deleted customer by ID
// @Tags customers
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to get customer"
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")
	logger = logger.With(slog.String("customer_id", customerID))

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			logger.Error("Failed to get customer from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates an existing customer's name
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Param   customer body dto.UpdateCustomerRequest true "Customer details"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input or customer already deleted"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to update customer"
// @Router /customers/{customerID} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("customer_id", customerID))

	updatedCustomer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Customer not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating customer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update customer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		}
		return
	}

	logger.Info("Customer updated successfully")
	c.JSON(http.StatusOK, dto.ToCustomerResponse(updatedCustomer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Soft deletes a customer and cascades the deletion to its invoices
// @Tags customers
// @Produce  json
// @Param   customerID path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Customer already deleted"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to delete customer"
// @Router /customers/{customerID} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")
	logger = logger.With(slog.String("customer_id", customerID))

	err := h.customerService.DeleteCustomer(c.Request.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Customer not found for delete")
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error deleting customer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete customer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		}
		return
	}

	logger.Info("Customer deleted successfully")
	c.Status(http.StatusNoContent)
}

// pagingParams reads limit/offset query params with list defaults.
func pagingParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
