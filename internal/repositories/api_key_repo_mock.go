package repositories

import (
	"sync"

	"lapak/internal/apperrors"
	"lapak/internal/models"

	"github.com/google/uuid"
)

// MockApiKeyRepository is an in-memory implementation of ApiKeyRepository.
type MockApiKeyRepository struct {
	keys map[string]models.ApiKey
	mu   sync.RWMutex
}

// NewMockApiKeyRepository creates a new instance of MockApiKeyRepository.
func NewMockApiKeyRepository() *MockApiKeyRepository {
	return &MockApiKeyRepository{
		keys: make(map[string]models.ApiKey),
	}
}

// GetBySellerID returns all API keys owned by the given seller.
func (r *MockApiKeyRepository) GetBySellerID(sellerID string) ([]models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keyList []models.ApiKey
	for _, k := range r.keys {
		if k.SellerID == sellerID {
			keyList = append(keyList, k)
		}
	}
	return keyList, nil
}

// GetByIDForSeller returns an API key by id, scoped to its owning seller.
func (r *MockApiKeyRepository) GetByIDForSeller(sellerID, id string) (*models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keys[id]
	if !ok || key.SellerID != sellerID {
		return nil, apperrors.NewNotFound("API key", id)
	}
	return &key, nil
}

// GetByKey returns an API key by its secret value.
func (r *MockApiKeyRepository) GetByKey(secret string) (*models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.keys {
		if k.Key == secret {
			key := k
			return &key, nil
		}
	}
	return nil, apperrors.NewNotFound("API key", "secret")
}

// GetBySellerIDAndName returns the seller's API key with the given name.
func (r *MockApiKeyRepository) GetBySellerIDAndName(sellerID, name string) (*models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.keys {
		if k.SellerID == sellerID && k.Name == name {
			key := k
			return &key, nil
		}
	}
	return nil, apperrors.NewNotFound("API key", name)
}

// Create adds a new API key.
func (r *MockApiKeyRepository) Create(apiKey *models.ApiKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if apiKey.ID == "" {
		apiKey.ID = uuid.New().String()
	}
	r.keys[apiKey.ID] = *apiKey
	return nil
}

// Update modifies an existing API key.
func (r *MockApiKeyRepository) Update(apiKey *models.ApiKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[apiKey.ID]; !ok {
		return apperrors.NewNotFound("API key", apiKey.ID)
	}
	r.keys[apiKey.ID] = *apiKey
	return nil
}

// Delete removes an API key by its ID.
func (r *MockApiKeyRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[id]; !ok {
		return apperrors.NewNotFound("API key", id)
	}
	delete(r.keys, id)
	return nil
}
