package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) postGraphQL(query string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"query": query})
	req, _ := http.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestGraphQL_CustomerWithInvoices() {
	customerID := uuid.NewString()
	customer := &domain.Customer{
		CustomerID: customerID,
		Name:       "Acme Corp",
		AuditFields: domain.AuditFields{
			CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	invoices := []domain.Invoice{
		{
			InvoiceID:  uuid.NewString(),
			CustomerID: customerID,
			Amount:     decimal.RequireFromString("100.50"),
			Currency:   "EUR",
		},
	}

	suite.mockCustomerService.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()
	suite.mockInvoiceService.On("ListInvoices", mock.Anything, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == customerID
	}), mock.AnythingOfType("int"), 0).Return(invoices, nil).Once()

	w := suite.postGraphQL(`{ customer(id: "` + customerID + `") { id name invoices { id amount currency } } }`)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Customer struct {
				ID       string `json:"id"`
				Name     string `json:"name"`
				Invoices []struct {
					ID       string  `json:"id"`
					Amount   float64 `json:"amount"`
					Currency string  `json:"currency"`
				} `json:"invoices"`
			} `json:"customer"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Errors)
	suite.Equal(customerID, resp.Data.Customer.ID)
	suite.Equal("Acme Corp", resp.Data.Customer.Name)
	suite.Require().Len(resp.Data.Customer.Invoices, 1)
	suite.InDelta(100.50, resp.Data.Customer.Invoices[0].Amount, 1e-9)
	suite.Equal("EUR", resp.Data.Customer.Invoices[0].Currency)
}

func (suite *HandlerTestSuite) TestGraphQL_UnknownCustomerIsNull() {
	customerID := uuid.NewString()

	suite.mockCustomerService.On("GetCustomerByID", mock.Anything, customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.postGraphQL(`{ customer(id: "` + customerID + `") { id name } }`)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Customer *struct{} `json:"customer"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Nil(resp.Data.Customer)
}

func (suite *HandlerTestSuite) TestGraphQL_InvoicesByCustomerName() {
	customerID := uuid.NewString()
	customer := &domain.Customer{CustomerID: customerID, Name: "Acme Corp"}
	invoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), CustomerID: customerID, Amount: decimal.NewFromInt(10), Currency: "USD"},
		{InvoiceID: uuid.NewString(), CustomerID: customerID, Amount: decimal.NewFromInt(20), Currency: "USD"},
	}

	suite.mockCustomerService.On("FindCustomerByName", mock.Anything, "acme").Return(customer, nil).Once()
	suite.mockInvoiceService.On("ListInvoices", mock.Anything, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == customerID
	}), 100, 0).Return(invoices, nil).Once()

	w := suite.postGraphQL(`{ invoices(customerName: "acme") { id currency } }`)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Invoices []struct {
				ID string `json:"id"`
			} `json:"invoices"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Errors)
	suite.Len(resp.Data.Invoices, 2)
}

func (suite *HandlerTestSuite) TestGraphQL_MissingQueryIs400() {
	req, _ := http.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}
