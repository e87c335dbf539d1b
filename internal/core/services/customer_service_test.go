package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	"github.com/invodesk/invoice_analytics_app/internal/core/domain"
	"github.com/invodesk/invoice_analytics_app/internal/core/services"
	"github.com/invodesk/invoice_analytics_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByName(ctx context.Context, nameFragment string) (*domain.Customer, error) {
	args := m.Called(ctx, nameFragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) MarkCustomerDeleted(ctx context.Context, customerID string, deletedAt time.Time) error {
	args := m.Called(ctx, customerID, deletedAt)
	return args.Error(0)
}

// --- Test Suite ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	service          *services.CustomerService
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo)
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{Name: "Acme Corp"}

	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == "Acme Corp" && c.CustomerID != "" && c.DeletedAt == nil
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.Equal("Acme Corp", customer.Name)
	suite.NotEmpty(customer.CustomerID)
	suite.Equal(customer.CreatedAt, customer.LastUpdatedAt)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	expected := &domain.Customer{CustomerID: customerID, Name: "Acme Corp"}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(expected, nil).Once()

	customer, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().NoError(err)
	suite.Equal(expected, customer)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_DeletedIsNotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)
	deleted := &domain.Customer{CustomerID: customerID, Name: "Gone Inc", DeletedAt: &deletedAt}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(deleted, nil).Once()

	customer, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestFindCustomerByName_Success() {
	ctx := context.Background()
	expected := &domain.Customer{CustomerID: uuid.NewString(), Name: "Acme Corp"}

	suite.mockCustomerRepo.On("FindCustomerByName", ctx, "acme").Return(expected, nil).Once()

	customer, err := suite.service.FindCustomerByName(ctx, "acme")

	suite.Require().NoError(err)
	suite.Equal(expected, customer)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestListCustomers_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("ListCustomers", ctx, 100, 0).Return(nil, nil).Once()

	customers, err := suite.service.ListCustomers(ctx, 100, 0)

	suite.Require().NoError(err)
	suite.NotNil(customers)
	suite.Empty(customers)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{CustomerID: customerID, Name: "Old Name"}
	req := dto.UpdateCustomerRequest{Name: "New Name"}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == customerID && c.Name == "New Name"
	})).Return(nil).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, req)

	suite.Require().NoError(err)
	suite.Equal("New Name", customer.Name)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_DeletedRejected() {
	ctx := context.Background()
	customerID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)
	deleted := &domain.Customer{CustomerID: customerID, Name: "Gone Inc", DeletedAt: &deletedAt}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(deleted, nil).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{Name: "X"})

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "UpdateCustomer")
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{CustomerID: customerID, Name: "Acme Corp"}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockCustomerRepo.On("MarkCustomerDeleted", ctx, customerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteCustomer(ctx, customerID)

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_AlreadyDeleted() {
	ctx := context.Background()
	customerID := uuid.NewString()
	deletedAt := time.Now().Add(-time.Hour)
	deleted := &domain.Customer{CustomerID: customerID, Name: "Gone Inc", DeletedAt: &deletedAt}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(deleted, nil).Once()

	err := suite.service.DeleteCustomer(ctx, customerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "MarkCustomerDeleted")
}

// --- Run Suite ---
func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
