package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSellerProfileRepository is a GORM implementation of SellerProfileRepository.
type GORMSellerProfileRepository struct {
	db *gorm.DB
}

// NewGORMSellerProfileRepository creates a new instance of GORMSellerProfileRepository.
func NewGORMSellerProfileRepository(db *gorm.DB) *GORMSellerProfileRepository {
	return &GORMSellerProfileRepository{
		db: db,
	}
}

// Create creates a new seller profile in the database.
func (r *GORMSellerProfileRepository) Create(profile *models.SellerProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create seller profile: %w", err)
	}
	return nil
}

// GetByID retrieves a seller profile by its ID from the database.
func (r *GORMSellerProfileRepository) GetByID(id string) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("seller profile", id)
		}
		return nil, fmt.Errorf("failed to get seller profile by ID %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID retrieves the seller profile owned by the given user.
func (r *GORMSellerProfileRepository) GetByUserID(userID string) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("seller profile", userID)
		}
		return nil, fmt.Errorf("failed to get seller profile for user %s: %w", userID, err)
	}
	return &profile, nil
}
