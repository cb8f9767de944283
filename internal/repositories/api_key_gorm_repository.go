package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMApiKeyRepository is a GORM implementation of ApiKeyRepository.
type GORMApiKeyRepository struct {
	db *gorm.DB
}

// NewGORMApiKeyRepository creates a new instance of GORMApiKeyRepository.
func NewGORMApiKeyRepository(db *gorm.DB) *GORMApiKeyRepository {
	return &GORMApiKeyRepository{
		db: db,
	}
}

// GetBySellerID retrieves all API keys owned by the given seller.
func (r *GORMApiKeyRepository) GetBySellerID(sellerID string) ([]models.ApiKey, error) {
	var keys []models.ApiKey
	if err := r.db.Order("created_at DESC").Find(&keys, "seller_id = ?", sellerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get API keys for seller %s: %w", sellerID, err)
	}
	return keys, nil
}

// GetByIDForSeller retrieves an API key by id, scoped to its owning seller.
func (r *GORMApiKeyRepository) GetByIDForSeller(sellerID, id string) (*models.ApiKey, error) {
	var key models.ApiKey
	if err := r.db.First(&key, "seller_id = ? AND id = ?", sellerID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("API key", id)
		}
		return nil, fmt.Errorf("failed to get API key %s for seller %s: %w", id, sellerID, err)
	}
	return &key, nil
}

// GetByKey retrieves an API key by its secret value.
func (r *GORMApiKeyRepository) GetByKey(secret string) (*models.ApiKey, error) {
	var key models.ApiKey
	if err := r.db.First(&key, "key = ?", secret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("API key", "secret")
		}
		return nil, fmt.Errorf("failed to get API key by secret: %w", err)
	}
	return &key, nil
}

// GetBySellerIDAndName retrieves the seller's API key with the given name.
func (r *GORMApiKeyRepository) GetBySellerIDAndName(sellerID, name string) (*models.ApiKey, error) {
	var key models.ApiKey
	if err := r.db.First(&key, "seller_id = ? AND name = ?", sellerID, name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("API key", name)
		}
		return nil, fmt.Errorf("failed to get API key %q for seller %s: %w", name, sellerID, err)
	}
	return &key, nil
}

// Create creates a new API key in the database.
func (r *GORMApiKeyRepository) Create(apiKey *models.ApiKey) error {
	if apiKey.ID == "" {
		apiKey.ID = uuid.New().String()
	}
	if err := r.db.Create(apiKey).Error; err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}

// Update updates an existing API key in the database.
func (r *GORMApiKeyRepository) Update(apiKey *models.ApiKey) error {
	res := r.db.Save(apiKey)
	if res.Error != nil {
		return fmt.Errorf("failed to update API key: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("API key", apiKey.ID)
	}
	return nil
}

// Delete deletes an API key by its ID from the database.
func (r *GORMApiKeyRepository) Delete(id string) error {
	res := r.db.Delete(&models.ApiKey{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete API key: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("API key", id)
	}
	return nil
}
