package repositories

import "lapak/internal/models"

// SellerProfileRepository defines the interface for seller profile data access.
type SellerProfileRepository interface {
	Create(profile *models.SellerProfile) error
	GetByID(id string) (*models.SellerProfile, error)
	GetByUserID(userID string) (*models.SellerProfile, error)
}
