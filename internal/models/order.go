package models

import "gorm.io/gorm"

// Order statuses accepted by the status-change operation.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is a customer's purchase of a single product. The seller side of an
// order is not stored here; it is derived through the product's owner at
// read time, so reassigned products never leave stale ownership behind.
type Order struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID  string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	CustomerID string `json:"customer_id" gorm:"index;type:varchar(36)"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
	Status     string `json:"status" gorm:"type:varchar(20)"`
	gorm.Model
}
