package services

import (
	"context"
	"fmt"

	"warung/internal/cartlock"
	"warung/internal/repositories"

	"go.uber.org/zap"
)

// CartAction is a single-step change to a cart line.
type CartAction string

const (
	ActionAdd    CartAction = "add"
	ActionRemove CartAction = "remove"
)

func (a CartAction) delta() (int, error) {
	switch a {
	case ActionAdd:
		return 1, nil
	case ActionRemove:
		return -1, nil
	default:
		return 0, fmt.Errorf("%q: %w", string(a), ErrInvalidAction)
	}
}

// CartService mutates and reads the customer's open order.
type CartService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	locker   cartlock.Locker
	log      *zap.Logger
}

func NewCartService(orders repositories.OrderRepository, products repositories.ProductRepository, locker cartlock.Locker, log *zap.Logger) *CartService {
	return &CartService{
		orders:   orders,
		products: products,
		locker:   locker,
		log:      log,
	}
}

// UpdateItem applies action to the customer's line for productID and returns
// the line's new quantity; 0 means the line is gone.
func (s *CartService) UpdateItem(ctx context.Context, customerID, productID string, action CartAction) (int, error) {
	delta, err := action.delta()
	if err != nil {
		return 0, err
	}
	if customerID == "" {
		return 0, ErrUnauthenticated
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return 0, err
	}

	unlock, err := s.locker.Lock(ctx, customerID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	order, err := s.orders.GetOrCreateOpenOrder(ctx, customerID)
	if err != nil {
		return 0, err
	}

	quantity, err := s.orders.AdjustItemQuantity(ctx, order.ID, productID, delta)
	if err != nil {
		return 0, err
	}

	s.log.Debug("cart item updated",
		zap.String("customer_id", customerID),
		zap.String("order_id", order.ID),
		zap.String("product_id", productID),
		zap.String("action", string(action)),
		zap.Int("quantity", quantity))
	return quantity, nil
}

// GetCart returns the caller's cart. An empty customerID yields a GuestCart.
func (s *CartService) GetCart(ctx context.Context, customerID string) (Cart, error) {
	if customerID == "" {
		return GuestCart{}, nil
	}

	unlock, err := s.locker.Lock(ctx, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err := s.orders.GetOrCreateOpenOrder(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return AuthenticatedCart{Order: order}, nil
}
