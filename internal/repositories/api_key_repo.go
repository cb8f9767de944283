package repositories

import "lapak/internal/models"

// ApiKeyRepository defines the interface for API key data access.
//
// Lookups that take a sellerID are ownership-scoped: a key belonging to a
// different seller is reported as not found, never as someone else's key.
type ApiKeyRepository interface {
	GetBySellerID(sellerID string) ([]models.ApiKey, error)
	GetByIDForSeller(sellerID, id string) (*models.ApiKey, error)
	GetByKey(key string) (*models.ApiKey, error)
	GetBySellerIDAndName(sellerID, name string) (*models.ApiKey, error)
	Create(apiKey *models.ApiKey) error
	Update(apiKey *models.ApiKey) error
	Delete(id string) error
}
