package repositories

import (
	"context"
	"errors"
	"fmt"

	"warung/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user and its customer record. GORM saves the has-one
// association inside the same transaction as the user row.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Customer == nil {
		user.Customer = &models.Customer{}
	}
	if user.Customer.Name == "" {
		user.Customer.Name = user.Username
	}
	if user.Customer.Email == "" {
		user.Customer.Email = user.Email
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		user.Customer = nil
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username, "username "+username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email, "email "+email)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id, "ID "+id)
}

func (r *GORMUserRepository) first(ctx context.Context, query string, arg interface{}, what string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Customer").First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with %s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", what, err)
	}
	return &user, nil
}
