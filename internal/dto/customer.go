package dto

import (
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

// UpdateCustomerRequest defines the data accepted when updating a customer.
type UpdateCustomerRequest struct {
	Name string `json:"name" binding:"required,min=1"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string     `json:"customerID"`
	Name          string     `json:"name"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
		DeletedAt:     c.DeletedAt,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to CustomerResponse DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = ToCustomerResponse(&c)
	}
	return res
}
