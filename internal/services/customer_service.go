package services

import (
	"context"

	"warung/internal/models"
	"warung/internal/repositories"
)

// CustomerService reads customer profiles.
type CustomerService struct {
	customers repositories.CustomerRepository
}

func NewCustomerService(customers repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// GetProfile returns the customer behind an authenticated request.
func (s *CustomerService) GetProfile(ctx context.Context, customerID string) (*models.Customer, error) {
	if customerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.customers.GetByID(ctx, customerID)
}
