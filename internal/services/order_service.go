package services

import (
	"context"
	"fmt"

	"warung/internal/models"
	"warung/internal/repositories"
)

// OrderService exposes a customer's order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// ListCompletedOrders returns the customer's finished orders, newest first.
func (s *OrderService) ListCompletedOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	if customerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.orderRepo.ListCompleted(ctx, customerID)
}

// GetOrder retrieves one of the customer's orders. Orders of other customers
// are reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID string) (*models.Order, error) {
	if customerID == "" {
		return nil, ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, repositories.ErrNotFound)
	}
	return order, nil
}
