package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/pkg/keygen"
)

// maxGenerateAttempts bounds the secret-uniqueness retry loop. A collision
// is astronomically unlikely; the bound makes the failure mode explicit
// instead of looping forever.
const maxGenerateAttempts = 10

// Default rate limit configuration for new keys.
const (
	defaultRequestsPerMinute = 60
	defaultRequestsPerDay    = 10000
)

// GenerateKeyInput carries the caller-supplied fields for a new API key.
type GenerateKeyInput struct {
	Name              string
	Description       string
	RequestsPerMinute int
	RequestsPerDay    int
	ExpiresAt         *time.Time
}

// ApiKeyService manages the lifecycle of per-seller API keys and validates
// inbound key credentials. Rate limit fields are stored here as
// configuration; enforcement belongs to the throttling middleware.
type ApiKeyService struct {
	keyRepo    repositories.ApiKeyRepository
	sellerRepo repositories.SellerProfileRepository
	publisher  EventPublisher
}

// NewApiKeyService creates a new ApiKeyService. publisher may be nil.
func NewApiKeyService(keyRepo repositories.ApiKeyRepository, sellerRepo repositories.SellerProfileRepository, publisher EventPublisher) *ApiKeyService {
	return &ApiKeyService{
		keyRepo:    keyRepo,
		sellerRepo: sellerRepo,
		publisher:  publisher,
	}
}

// Generate creates a new active API key for the seller. Key names are
// unique per seller, not globally.
func (s *ApiKeyService) Generate(sellerID string, input GenerateKeyInput) (*models.ApiKey, error) {
	if _, err := s.sellerRepo.GetByID(sellerID); err != nil {
		return nil, err
	}

	_, err := s.keyRepo.GetBySellerIDAndName(sellerID, input.Name)
	if err == nil {
		return nil, apperrors.NewBusiness(apperrors.CodeDuplicateApiKeyName,
			fmt.Sprintf("API key with name '%s' already exists", input.Name))
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	secret, err := s.generateUniqueSecret()
	if err != nil {
		return nil, err
	}

	rpm := input.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	rpd := input.RequestsPerDay
	if rpd <= 0 {
		rpd = defaultRequestsPerDay
	}

	apiKey := &models.ApiKey{
		SellerID:          sellerID,
		Key:               secret,
		Name:              input.Name,
		Description:       input.Description,
		IsActive:          true,
		ExpiresAt:         input.ExpiresAt,
		RequestsPerMinute: rpm,
		RequestsPerDay:    rpd,
	}
	if err := s.keyRepo.Create(apiKey); err != nil {
		return nil, err
	}
	return apiKey, nil
}

// Validate checks an inbound secret and returns the owning seller profile
// id. Every no-match cause (bad format, unknown secret, deactivated,
// expired) returns the same ErrUnauthorized; the format check simply skips
// the storage lookup.
func (s *ApiKeyService) Validate(secret string) (string, error) {
	if !keygen.ValidFormat(secret) {
		return "", apperrors.ErrUnauthorized
	}

	key, err := s.keyRepo.GetByKey(secret)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.ErrUnauthorized
		}
		return "", err
	}
	if !key.IsActive {
		return "", apperrors.ErrUnauthorized
	}
	if key.ExpiresAt != nil && !key.ExpiresAt.After(time.Now()) {
		return "", apperrors.ErrUnauthorized
	}
	return key.SellerID, nil
}

// MarkUsed records that the key was just used. Callers invoke it off the
// request path; its failure must never surface to the client.
func (s *ApiKeyService) MarkUsed(secret string) error {
	key, err := s.keyRepo.GetByKey(secret)
	if err != nil {
		return err
	}

	now := time.Now()
	key.LastUsedAt = &now
	if err := s.keyRepo.Update(key); err != nil {
		return err
	}

	if s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"key_id":    key.ID,
			"seller_id": key.SellerID,
			"used_at":   now,
		})
		if err == nil {
			if err := s.publisher.Publish(EventApiKeyUsed, body); err != nil {
				log.Printf("Warning: failed to publish %s event for key %s: %v", EventApiKeyUsed, key.ID, err)
			}
		}
	}
	return nil
}

// ListForSeller returns all keys owned by the seller.
func (s *ApiKeyService) ListForSeller(sellerID string) ([]models.ApiKey, error) {
	return s.keyRepo.GetBySellerID(sellerID)
}

// GetForSeller returns one of the seller's keys. Keys belonging to other
// sellers are reported as not found, so key ids can never be probed across
// sellers.
func (s *ApiKeyService) GetForSeller(sellerID, keyID string) (*models.ApiKey, error) {
	return s.keyRepo.GetByIDForSeller(sellerID, keyID)
}

// Deactivate turns one of the seller's keys off.
func (s *ApiKeyService) Deactivate(sellerID, keyID string) error {
	return s.setActive(sellerID, keyID, false)
}

// Activate turns one of the seller's keys back on.
func (s *ApiKeyService) Activate(sellerID, keyID string) error {
	return s.setActive(sellerID, keyID, true)
}

// Delete removes one of the seller's keys.
func (s *ApiKeyService) Delete(sellerID, keyID string) error {
	key, err := s.keyRepo.GetByIDForSeller(sellerID, keyID)
	if err != nil {
		return err
	}
	return s.keyRepo.Delete(key.ID)
}

func (s *ApiKeyService) setActive(sellerID, keyID string, active bool) error {
	key, err := s.keyRepo.GetByIDForSeller(sellerID, keyID)
	if err != nil {
		return err
	}
	key.IsActive = active
	return s.keyRepo.Update(key)
}

func (s *ApiKeyService) generateUniqueSecret() (string, error) {
	for attempts := 0; attempts < maxGenerateAttempts; attempts++ {
		secret, err := keygen.NewKey()
		if err != nil {
			return "", err
		}

		_, err = s.keyRepo.GetByKey(secret)
		if apperrors.IsNotFound(err) {
			return secret, nil
		}
		if err != nil {
			return "", err
		}
		// Collision against a stored key; try again.
	}
	return "", apperrors.NewBusiness(apperrors.CodeApiKeyConflict,
		"unable to generate a unique API key after multiple attempts")
}
