package repositories

import (
	"context"

	"warung/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*models.Customer, error)
}
