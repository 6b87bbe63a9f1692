package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is either the customer's open cart (Complete == false) or a finalized
// purchase. The partial unique index keeps at most one open order per customer.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID    *string     `json:"customer_id" gorm:"type:varchar(36);uniqueIndex:idx_orders_open_customer,where:complete = false"`
	Customer      *Customer   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	DateOrdered   time.Time   `json:"date_ordered" gorm:"autoCreateTime"`
	Complete      bool        `json:"complete" gorm:"not null"`
	TransactionID *string     `json:"transaction_id" gorm:"type:varchar(100)"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// CartTotal sums price × quantity over the loaded lines.
func (o *Order) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// CartItems sums the quantities of the loaded lines.
func (o *Order) CartItems() int {
	count := 0
	for i := range o.Items {
		count += o.Items[i].Quantity
	}
	return count
}

// OrderItem is one product-quantity line of an order.
type OrderItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   *string   `json:"order_id" gorm:"type:varchar(36);uniqueIndex:idx_order_items_line,priority:1"`
	ProductID *string   `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_order_items_line,priority:2"`
	Product   *Product  `json:"product" gorm:"constraint:OnDelete:SET NULL"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	DateAdded time.Time `json:"date_added" gorm:"autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// LineTotal is price × quantity; a line whose product is gone is worth zero.
func (i *OrderItem) LineTotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
