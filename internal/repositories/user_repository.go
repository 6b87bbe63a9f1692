package repositories

import (
	"context"

	"warung/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create stores the user together with its Customer record.
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
