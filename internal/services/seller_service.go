package services

import (
	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// SellerService manages seller profiles. Every user has at most one
// profile; products and API keys hang off it.
type SellerService struct {
	sellerRepo repositories.SellerProfileRepository
}

// NewSellerService creates a new SellerService.
func NewSellerService(sellerRepo repositories.SellerProfileRepository) *SellerService {
	return &SellerService{
		sellerRepo: sellerRepo,
	}
}

// CreateProfile creates the seller profile for the acting user.
func (s *SellerService) CreateProfile(p models.Principal, profile *models.SellerProfile) error {
	if p.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	if p.Kind != models.PrincipalSeller && p.Kind != models.PrincipalAdmin {
		return apperrors.ErrForbidden
	}

	_, err := s.sellerRepo.GetByUserID(p.UserID)
	if err == nil {
		return apperrors.NewBusiness(apperrors.CodeSellerProfileExists,
			"seller profile already exists for this user")
	}
	if !apperrors.IsNotFound(err) {
		return err
	}

	profile.UserID = p.UserID
	return s.sellerRepo.Create(profile)
}

// GetProfile returns the acting user's seller profile.
func (s *SellerService) GetProfile(p models.Principal) (*models.SellerProfile, error) {
	if p.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return s.sellerRepo.GetByUserID(p.UserID)
}
