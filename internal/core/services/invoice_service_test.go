package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	portsrepo "github.com/invodesk/invoice_analytics_app/internal/core/ports/repositories"
	"github.com/invodesk/invoice_analytics_app/internal/core/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter, limit, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) MarkInvoiceDeleted(ctx context.Context, invoiceID string, deletedAt time.Time) error {
	args := m.Called(ctx, invoiceID, deletedAt)
	return args.Error(0)
}

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.RateQuote, error) {
	args := m.Called(ctx, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

func (m *MockRateService) GetRateToDefault(ctx context.Context, fromCurrency string) (*domain.RateQuote, error) {
	args := m.Called(ctx, fromCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateQuote), args.Error(1)
}

func (m *MockRateService) DefaultCurrency() string {
	args := m.Called()
	return args.String(0)
}

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockCustomerRepo *MockCustomerRepository
	mockRateService  *MockRateService
	service          *services.InvoiceService
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockRateService = new(MockRateService)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockCustomerRepo, suite.mockRateService)
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Amount:     decimal.RequireFromString("100.00"),
		Currency:   "EUR",
	}
	quote := &domain.RateQuote{
		FromCurrency: "EUR",
		ToCurrency:   "USD",
		Rate:         decimal.RequireFromString("1.10"),
		Source:       domain.RateSourceFetched,
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID, Name: "Acme Corp"}, nil).Once()
	suite.mockRateService.On("GetRateToDefault", ctx, "EUR").Return(quote, nil).Once()
	suite.mockRateService.On("DefaultCurrency").Return("USD").Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.CustomerID == customerID &&
			inv.Currency == "EUR" &&
			inv.DefaultCurrency == "USD" &&
			inv.ExchangeRate.Equal(quote.Rate) &&
			inv.AmountInDefaultCurrency.Equal(decimal.RequireFromString("110.00"))
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.True(invoice.AmountInDefaultCurrency.Equal(decimal.RequireFromString("110.00")))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID: uuid.NewString(),
		Amount:     decimal.Zero,
		Currency:   "EUR",
	}

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "FindCustomerByID")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_CustomerNotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Amount:     decimal.RequireFromString("50"),
		Currency:   "EUR",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DeletedCustomerRejected() {
	ctx := context.Background()
	customerID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Amount:     decimal.RequireFromString("50"),
		Currency:   "EUR",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID, DeletedAt: &deletedAt}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateService.AssertNotCalled(suite.T(), "GetRateToDefault")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RateUnavailableRejectsCreate() {
	ctx := context.Background()
	customerID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Amount:     decimal.RequireFromString("50"),
		Currency:   "EUR",
	}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).
		Return(&domain.Customer{CustomerID: customerID, Name: "Acme Corp"}, nil).Once()
	suite.mockRateService.On("GetRateToDefault", ctx, "EUR").Return(nil, apperrors.ErrRateUnavailable).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice")
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_DeletedIsNotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID, DeletedAt: &deletedAt}, nil).Once()

	invoice, err := suite.service.GetInvoiceByID(ctx, invoiceID)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_FiltersByCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()
	expected := []domain.Invoice{{InvoiceID: uuid.NewString(), CustomerID: customerID}}

	suite.mockInvoiceRepo.On("ListInvoices", ctx, mock.MatchedBy(func(f portsrepo.InvoiceFilter) bool {
		return f.CustomerID != nil && *f.CustomerID == customerID
	}), 50, 0).Return(expected, nil).Once()

	invoices, err := suite.service.ListInvoices(ctx, &customerID, 50, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, invoices)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RecomputesConversion() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:               invoiceID,
		CustomerID:              uuid.NewString(),
		Amount:                  decimal.RequireFromString("100"),
		Currency:                "EUR",
		DefaultCurrency:         "USD",
		ExchangeRate:            decimal.RequireFromString("1.08"),
		AmountInDefaultCurrency: decimal.RequireFromString("108"),
	}
	newAmount := decimal.RequireFromString("200")
	newCurrency := "GBP"
	quote := &domain.RateQuote{
		FromCurrency: "GBP",
		ToCurrency:   "USD",
		Rate:         decimal.RequireFromString("1.27"),
		Source:       domain.RateSourceCached,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockRateService.On("GetRateToDefault", ctx, "GBP").Return(quote, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Currency == "GBP" &&
			inv.Amount.Equal(newAmount) &&
			inv.AmountInDefaultCurrency.Equal(decimal.RequireFromString("254"))
	})).Return(nil).Once()

	invoice, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{
		Amount:   &newAmount,
		Currency: &newCurrency,
	})

	suite.Require().NoError(err)
	suite.True(invoice.AmountInDefaultCurrency.Equal(decimal.RequireFromString("254")))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockRateService.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_DeletedRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID, DeletedAt: &deletedAt}, nil).Once()

	invoice, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{})

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice")
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID}, nil).Once()
	suite.mockInvoiceRepo.On("MarkInvoiceDeleted", ctx, invoiceID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoiceID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_AlreadyDeleted() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID, DeletedAt: &deletedAt}, nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "MarkInvoiceDeleted")
}

// --- Run Suite ---
func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
