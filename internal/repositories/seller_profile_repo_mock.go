package repositories

import (
	"sync"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
)

// MockSellerProfileRepository is an in-memory implementation of SellerProfileRepository.
type MockSellerProfileRepository struct {
	profiles map[string]models.SellerProfile
	mu       sync.RWMutex
}

// NewMockSellerProfileRepository creates a new instance of MockSellerProfileRepository.
func NewMockSellerProfileRepository() *MockSellerProfileRepository {
	return &MockSellerProfileRepository{
		profiles: make(map[string]models.SellerProfile),
	}
}

// Create adds a new seller profile.
func (r *MockSellerProfileRepository) Create(profile *models.SellerProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	r.profiles[profile.ID] = *profile
	return nil
}

// GetByID returns a seller profile by its ID.
func (r *MockSellerProfileRepository) GetByID(id string) (*models.SellerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.NewNotFound("seller profile", id)
	}
	return &profile, nil
}

// GetByUserID returns the seller profile owned by the given user.
func (r *MockSellerProfileRepository) GetByUserID(userID string) (*models.SellerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, profile := range r.profiles {
		if profile.UserID == userID {
			p := profile
			return &p, nil
		}
	}
	return nil, apperrors.NewNotFound("seller profile", userID)
}
