package domain

import "time"

// Customer represents a billable customer.
type Customer struct {
	CustomerID string     `json:"customerID"` // Primary Key (UUID)
	Name       string     `json:"name"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"` // Soft delete marker
	AuditFields
}

// IsDeleted reports whether the customer has been soft deleted.
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}
