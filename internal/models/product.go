package models

import "gorm.io/gorm"

// Product represents a product in the store. SellerID is set from the
// acting principal at creation time and never changes afterwards.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID    string  `json:"seller_id" gorm:"index;type:varchar(36)"`
	CategoryID  string  `json:"category_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    bool    `json:"is_active"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
