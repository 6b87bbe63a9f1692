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

// MockCustomerRepository is a mock implementation of repositories.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func TestCustomerService_GetProfile(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", "c-1").Return(&models.Customer{ID: "c-1"}, nil).Once()
	customer, err := service.GetProfile(ctx, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, "Unnamed Customer", customer.DisplayName())

	mockRepo.On("GetByID", "c-9").Return(nil, fmt.Errorf("customer with ID c-9: %w", repositories.ErrNotFound)).Once()
	_, err = service.GetProfile(ctx, "c-9")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = service.GetProfile(ctx, "")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}
