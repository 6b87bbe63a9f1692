package repositories

import (
	"context"

	"warung/internal/models"
)

// OrderRepository defines the interface for order and cart data access.
// Orders returned by it carry their items with products preloaded.
type OrderRepository interface {
	// FindOpenOrder returns the customer's open order or ErrNotFound.
	FindOpenOrder(ctx context.Context, customerID string) (*models.Order, error)
	// GetOrCreateOpenOrder returns the customer's open order, creating it if needed.
	GetOrCreateOpenOrder(ctx context.Context, customerID string) (*models.Order, error)
	// AdjustItemQuantity adds delta to the order's line for productID, creating the
	// line at zero first. Lines left at zero or below are deleted. It returns the
	// resulting quantity, 0 when the line was deleted.
	AdjustItemQuantity(ctx context.Context, orderID, productID string, delta int) (int, error)
	// SaveCheckout persists the transaction id and completion flag of an open order
	// and, when shipping is non-nil, stores the shipping address, atomically.
	SaveCheckout(ctx context.Context, order *models.Order, shipping *models.ShippingAddress) error
	ListCompleted(ctx context.Context, customerID string) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
}
