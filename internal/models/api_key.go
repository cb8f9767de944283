package models

import (
	"time"

	"gorm.io/gorm"
)

// ApiKey is a long-lived secret granting a seller-scoped principal to an
// external integration. Rate limit fields are stored configuration; they
// are enforced by the throttling middleware, not by the key service.
type ApiKey struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID          string     `json:"seller_id" gorm:"index;type:varchar(36)"`
	Key               string     `json:"key" gorm:"uniqueIndex;type:varchar(64)"`
	Name              string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Description       string     `json:"description" validate:"omitempty,max=500"`
	IsActive          bool       `json:"is_active"`
	ExpiresAt         *time.Time `json:"expires_at"`
	LastUsedAt        *time.Time `json:"last_used_at"`
	RequestsPerMinute int        `json:"requests_per_minute" validate:"omitempty,gt=0"`
	RequestsPerDay    int        `json:"requests_per_day" validate:"omitempty,gt=0"`
	gorm.Model
}
