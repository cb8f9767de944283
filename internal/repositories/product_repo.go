package repositories

import "lapak/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetAllActive() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySellerID(sellerID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
