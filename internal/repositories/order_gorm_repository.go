package repositories

import (
	"context"
	"errors"
	"fmt"

	"warung/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
//
// The open-order and order-line "get or create" paths are upserts: an
// INSERT ... ON CONFLICT DO NOTHING against the unique indexes declared on the
// models, followed by a read. Concurrent callers therefore converge on the
// same row instead of creating duplicates.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.date_added, order_items.id")
		}).
		Preload("Items.Product")
}

// FindOpenOrder returns the customer's open order.
func (r *GORMOrderRepository) FindOpenOrder(ctx context.Context, customerID string) (*models.Order, error) {
	var order models.Order
	err := withItems(r.db.WithContext(ctx)).
		Where("customer_id = ? AND complete = ?", customerID, false).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("open order for customer %s: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get open order for customer %s: %w", customerID, err)
	}
	return &order, nil
}

// GetOrCreateOpenOrder returns the customer's open order, creating it if needed.
func (r *GORMOrderRepository) GetOrCreateOpenOrder(ctx context.Context, customerID string) (*models.Order, error) {
	order, err := r.FindOpenOrder(ctx, customerID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	candidate := models.Order{CustomerID: &customerID}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create open order for customer %s: %w", customerID, err)
	}
	return r.FindOpenOrder(ctx, customerID)
}

// AdjustItemQuantity adds delta to a line of the order and drops the line when
// its quantity reaches zero or below.
func (r *GORMOrderRepository) AdjustItemQuantity(ctx context.Context, orderID, productID string, delta int) (int, error) {
	var quantity int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line := models.OrderItem{OrderID: &orderID, ProductID: &productID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&line).Error; err != nil {
			return fmt.Errorf("failed to create order line: %w", err)
		}

		var current models.OrderItem
		if err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).First(&current).Error; err != nil {
			return fmt.Errorf("failed to load order line: %w", err)
		}

		err := tx.Model(&models.OrderItem{}).
			Where("id = ?", current.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", delta)).Error
		if err != nil {
			return fmt.Errorf("failed to update order line quantity: %w", err)
		}

		if err := tx.First(&current, "id = ?", current.ID).Error; err != nil {
			return fmt.Errorf("failed to reload order line: %w", err)
		}

		quantity = current.Quantity
		if quantity <= 0 {
			if err := tx.Delete(&models.OrderItem{}, "id = ?", current.ID).Error; err != nil {
				return fmt.Errorf("failed to delete order line: %w", err)
			}
			quantity = 0
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

// SaveCheckout records the checkout outcome on an open order.
func (r *GORMOrderRepository) SaveCheckout(ctx context.Context, order *models.Order, shipping *models.ShippingAddress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND complete = ?", order.ID, false).
			Updates(map[string]interface{}{
				"transaction_id": order.TransactionID,
				"complete":       order.Complete,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to save checkout for order %s: %w", order.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("open order %s: %w", order.ID, ErrNotFound)
		}

		if shipping == nil {
			return nil
		}
		if err := tx.Create(shipping).Error; err != nil {
			return fmt.Errorf("failed to create shipping address for order %s: %w", order.ID, err)
		}
		return nil
	})
}

// ListCompleted returns the customer's completed orders, newest first.
func (r *GORMOrderRepository) ListCompleted(ctx context.Context, customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := withItems(r.db.WithContext(ctx)).
		Where("customer_id = ? AND complete = ?", customerID, true).
		Order("date_ordered DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for customer %s: %w", customerID, err)
	}
	return orders, nil
}

// GetByID retrieves an order by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := withItems(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}
