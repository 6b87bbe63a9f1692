package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog entry. Names are not unique.
type Product struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string          `json:"name" gorm:"type:varchar(200);not null;index" validate:"required,min=1,max=200"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL  string          `json:"image_url" gorm:"type:varchar(500)" validate:"omitempty,url,max=500"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
