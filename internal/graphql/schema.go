// Package graphql exposes read-only customer and invoice queries over the
// same services that back the REST endpoints.
package graphql

import (
	"errors"
	"fmt"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portssvc "github.com/invodesk/invoice_analytics_app/internal/core/ports/services"
	"github.com/graphql-go/graphql"
)

// graphqlListLimit caps nested and unfiltered invoice lists.
const graphqlListLimit = 1000

// NewSchema builds the query schema over the service container.
func NewSchema(services *portssvc.ServiceContainer) (graphql.Schema, error) {
	invoiceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Invoice",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).InvoiceID, nil
				},
			},
			"customerID": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).CustomerID, nil
				},
			},
			"amount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).Amount.InexactFloat64(), nil
				},
			},
			"currency": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).Currency, nil
				},
			},
			"amountInDefaultCurrency": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).AmountInDefaultCurrency.InexactFloat64(), nil
				},
			},
			"exchangeRate": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).ExchangeRate.InexactFloat64(), nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Invoice).CreatedAt, nil
				},
			},
		},
	})

	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Customer).CustomerID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Customer).Name, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Customer).CreatedAt, nil
				},
			},
			"invoices": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(invoiceType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer := p.Source.(domain.Customer)
					return services.Invoice.ListInvoices(p.Context, &customer.CustomerID, graphqlListLimit, 0)
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"customer": &graphql.Field{
				Type:        customerType,
				Description: "Look up a non-deleted customer by ID, with its invoices.",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					customer, err := services.Customer.GetCustomerByID(p.Context, id)
					if err != nil {
						if errors.Is(err, apperrors.ErrNotFound) {
							return nil, nil
						}
						return nil, fmt.Errorf("failed to resolve customer: %w", err)
					}
					return *customer, nil
				},
			},
			"invoices": &graphql.Field{
				Type:        graphql.NewList(graphql.NewNonNull(invoiceType)),
				Description: "List non-deleted invoices, optionally filtered by customer ID or a case-insensitive customer name fragment.",
				Args: graphql.FieldConfigArgument{
					"customerID":   &graphql.ArgumentConfig{Type: graphql.String},
					"customerName": &graphql.ArgumentConfig{Type: graphql.String},
					"skip":         &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":        &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					skip, _ := p.Args["skip"].(int)
					limit, _ := p.Args["limit"].(int)

					if id, ok := p.Args["customerID"].(string); ok && id != "" {
						return services.Invoice.ListInvoices(p.Context, &id, limit, skip)
					}

					if name, ok := p.Args["customerName"].(string); ok && name != "" {
						customer, err := services.Customer.FindCustomerByName(p.Context, name)
						if err != nil {
							if errors.Is(err, apperrors.ErrNotFound) {
								return []domain.Invoice{}, nil
							}
							return nil, fmt.Errorf("failed to resolve customer by name: %w", err)
						}
						return services.Invoice.ListInvoices(p.Context, &customer.CustomerID, limit, skip)
					}

					return services.Invoice.ListInvoices(p.Context, nil, limit, skip)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}
