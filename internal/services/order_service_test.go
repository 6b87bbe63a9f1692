package services_test

import (
	"context"
	"fmt"
	"testing"

	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOpenOrder(ctx context.Context, customerID string) (*models.Order, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrCreateOpenOrder(ctx context.Context, customerID string) (*models.Order, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) AdjustItemQuantity(ctx context.Context, orderID, productID string, delta int) (int, error) {
	args := m.Called(orderID, productID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) SaveCheckout(ctx context.Context, order *models.Order, shipping *models.ShippingAddress) error {
	args := m.Called(order, shipping)
	return args.Error(0)
}

func (m *MockOrderRepository) ListCompleted(ctx context.Context, customerID string) ([]models.Order, error) {
	args := m.Called(customerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestOrderService_ListCompletedOrders(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)
	ctx := context.Background()

	customerID := "customer-1"
	expected := []models.Order{{ID: "o-2", CustomerID: &customerID, Complete: true}}
	mockRepo.On("ListCompleted", customerID).Return(expected, nil).Once()

	orders, err := service.ListCompletedOrders(ctx, customerID)
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)

	_, err = service.ListCompletedOrders(ctx, "")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_GetOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)
	ctx := context.Background()

	owner := "customer-1"
	order := &models.Order{ID: "o-1", CustomerID: &owner, Complete: true}

	mockRepo.On("GetByID", "o-1").Return(order, nil).Twice()
	got, err := service.GetOrder(ctx, owner, "o-1")
	assert.NoError(t, err)
	assert.Equal(t, order, got)

	// Someone else's order looks like a missing one.
	_, err = service.GetOrder(ctx, "customer-2", "o-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mockRepo.On("GetByID", "o-9").Return(nil, fmt.Errorf("order with ID o-9: %w", repositories.ErrNotFound)).Once()
	_, err = service.GetOrder(ctx, owner, "o-9")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
