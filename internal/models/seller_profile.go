package models

import "gorm.io/gorm"

// SellerProfile is the seller identity that owns products and API keys.
// Exactly one profile exists per user; it is deleted with the user.
type SellerProfile struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	StoreName  string `json:"store_name" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	LogoURL    string `json:"logo_url" gorm:"type:varchar(500)" validate:"omitempty,url"`
	IsApproved bool   `json:"is_approved"`
	gorm.Model
}
