package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer links an account to its cart and order history. Exactly one
// Customer exists per User; it is created together with the User.
type Customer struct {
	ID     string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID *string `json:"user_id,omitempty" gorm:"type:varchar(36);uniqueIndex"`
	Name   string  `json:"name" gorm:"type:varchar(200)"`
	Email  string  `json:"email" gorm:"type:varchar(200)"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DisplayName falls back to a placeholder for customers without a name.
func (c *Customer) DisplayName() string {
	if c.Name == "" {
		return "Unnamed Customer"
	}
	return c.Name
}
