package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingAddress is the delivery snapshot recorded at checkout.
type ShippingAddress struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID *string   `json:"customer_id" gorm:"type:varchar(36);index"`
	Customer   *Customer `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	OrderID    *string   `json:"order_id" gorm:"type:varchar(36);index"`
	Order      *Order    `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Address    string    `json:"address" gorm:"type:varchar(200);not null"`
	City       string    `json:"city" gorm:"type:varchar(200);not null"`
	State      string    `json:"state" gorm:"type:varchar(200);not null"`
	Zipcode    string    `json:"zipcode" gorm:"type:varchar(200);not null"`
	DateAdded  time.Time `json:"date_added" gorm:"autoCreateTime"`
}

func (s *ShippingAddress) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
