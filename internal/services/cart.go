package services

import (
	"warung/internal/models"

	"github.com/shopspring/decimal"
)

// Cart is what a caller sees of a shopping cart. It is either an
// AuthenticatedCart backed by the customer's open order or a GuestCart.
type Cart interface {
	Lines() []models.OrderItem
	Total() decimal.Decimal
	ItemCount() int
	isCart()
}

// AuthenticatedCart is the open order of a known customer.
type AuthenticatedCart struct {
	Order *models.Order
}

func (c AuthenticatedCart) Lines() []models.OrderItem { return c.Order.Items }
func (c AuthenticatedCart) Total() decimal.Decimal    { return c.Order.CartTotal() }
func (c AuthenticatedCart) ItemCount() int            { return c.Order.CartItems() }
func (AuthenticatedCart) isCart()                     {}

// GuestCart is the always-empty cart of a caller without a customer.
type GuestCart struct{}

func (GuestCart) Lines() []models.OrderItem { return nil }
func (GuestCart) Total() decimal.Decimal    { return decimal.Zero }
func (GuestCart) ItemCount() int            { return 0 }
func (GuestCart) isCart()                   {}
