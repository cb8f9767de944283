package models

import "gorm.io/gorm"

// Category is a node in the catalog forest. ParentID is nil for roots.
// The parent chain must never cycle; that invariant is enforced by the
// category service, not the schema.
type Category struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ParentID   *string `json:"parent_id" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string  `json:"name" gorm:"type:varchar(150)" validate:"required,min=2,max=150"`
	SeoSlug    string  `json:"seo_slug" gorm:"uniqueIndex;type:varchar(150)" validate:"required,min=2,max=150"`
	IsActive   bool    `json:"is_active"`
	gorm.Model
}

// CategoryNode is a category with its recursively attached children, used
// for hierarchical rendering. Child order is whatever the store returns.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}
