package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warung/internal/cartlock"
	"warung/internal/events"
	"warung/internal/models"
	"warung/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShippingInfo is the delivery address submitted with a checkout. Fields are
// stored as given.
type ShippingInfo struct {
	Address string
	City    string
	State   string
	Zipcode string
}

// CheckoutResult is either CheckoutCompleted or CheckoutMismatched. Both
// variants report the transaction id that was written to the order.
type CheckoutResult interface {
	checkoutResult()
}

// CheckoutCompleted means the submitted total matched and the order is closed.
type CheckoutCompleted struct {
	OrderID       string
	TransactionID string
	Total         decimal.Decimal
	ItemCount     int
}

// CheckoutMismatched means the submitted total differed from the cart total.
// The order stays open with its transaction id overwritten.
type CheckoutMismatched struct {
	OrderID       string
	TransactionID string
	Expected      decimal.Decimal
	Submitted     decimal.Decimal
}

func (CheckoutCompleted) checkoutResult()  {}
func (CheckoutMismatched) checkoutResult() {}

// CheckoutService finalizes open orders.
type CheckoutService struct {
	orders    repositories.OrderRepository
	locker    cartlock.Locker
	publisher events.Publisher
	log       *zap.Logger

	newTransactionID func() string
	now              func() time.Time
}

func NewCheckoutService(orders repositories.OrderRepository, locker cartlock.Locker, publisher events.Publisher, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:           orders,
		locker:           locker,
		publisher:        publisher,
		log:              log,
		newTransactionID: uuid.NewString,
		now:              time.Now,
	}
}

// Checkout compares submitted with the open order's total. On an exact match
// the order is completed; either way the order receives a fresh transaction id
// and, when shipping is given, a shipping address row.
func (s *CheckoutService) Checkout(ctx context.Context, customerID string, submitted decimal.Decimal, shipping *ShippingInfo) (CheckoutResult, error) {
	if customerID == "" {
		return nil, ErrUnauthenticated
	}

	result, err := s.finalize(ctx, customerID, submitted, shipping)
	if err != nil {
		return nil, err
	}

	if done, ok := result.(CheckoutCompleted); ok {
		evt := events.OrderCompleted{
			OrderID:       done.OrderID,
			CustomerID:    customerID,
			TransactionID: done.TransactionID,
			Total:         done.Total,
			ItemCount:     done.ItemCount,
			CompletedAt:   s.now().UTC(),
		}
		if err := s.publisher.PublishOrderCompleted(ctx, evt); err != nil {
			s.log.Warn("failed to publish order completed event", zap.String("order_id", done.OrderID), zap.Error(err))
		}
	}
	return result, nil
}

func (s *CheckoutService) finalize(ctx context.Context, customerID string, submitted decimal.Decimal, shipping *ShippingInfo) (CheckoutResult, error) {
	unlock, err := s.locker.Lock(ctx, customerID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err := s.orders.FindOpenOrder(ctx, customerID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(order.Items) == 0 {
		return nil, ErrEmptyCart
	}

	transactionID := s.newTransactionID()
	order.TransactionID = &transactionID

	expected := order.CartTotal()
	order.Complete = submitted.Equal(expected)

	var address *models.ShippingAddress
	if shipping != nil {
		address = &models.ShippingAddress{
			CustomerID: &customerID,
			OrderID:    &order.ID,
			Address:    shipping.Address,
			City:       shipping.City,
			State:      shipping.State,
			Zipcode:    shipping.Zipcode,
		}
	}

	if err := s.orders.SaveCheckout(ctx, order, address); err != nil {
		return nil, fmt.Errorf("checkout of order %s: %w", order.ID, err)
	}

	if !order.Complete {
		s.log.Info("checkout total mismatch",
			zap.String("order_id", order.ID),
			zap.String("expected", expected.String()),
			zap.String("submitted", submitted.String()))
		return CheckoutMismatched{
			OrderID:       order.ID,
			TransactionID: transactionID,
			Expected:      expected,
			Submitted:     submitted,
		}, nil
	}

	s.log.Info("order completed", zap.String("order_id", order.ID), zap.String("transaction_id", transactionID))
	return CheckoutCompleted{
		OrderID:       order.ID,
		TransactionID: transactionID,
		Total:         expected,
		ItemCount:     order.CartItems(),
	}, nil
}
