package services

import (
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// Operation is the kind of access being decided on.
type Operation string

const (
	OpRead         Operation = "read"
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpDelete       Operation = "delete"
	OpStatusChange Operation = "status_change"
)

// AuthzService decides whether a principal may act on a seller-owned or
// customer-owned resource. Ownership is always compared against the value
// persisted on the resource; callers must never pass owner ids taken from a
// request body.
type AuthzService struct {
	sellerRepo repositories.SellerProfileRepository
}

// NewAuthzService creates a new AuthzService.
func NewAuthzService(sellerRepo repositories.SellerProfileRepository) *AuthzService {
	return &AuthzService{
		sellerRepo: sellerRepo,
	}
}

// ResolveSellerID returns the seller profile id the principal acts as.
// API key principals carry it directly; bearer-token principals have it
// looked up from their user id here, on first need. A user without a seller
// profile gets a SELLER_PROFILE_NOT_FOUND business error, which is a setup
// precondition failure, not a permission failure.
func (s *AuthzService) ResolveSellerID(p models.Principal) (string, error) {
	if p.SellerID != "" {
		return p.SellerID, nil
	}
	if p.Kind == models.PrincipalAnonymous {
		return "", apperrors.ErrUnauthorized
	}
	if p.Kind != models.PrincipalSeller && p.Kind != models.PrincipalAdmin {
		return "", apperrors.ErrForbidden
	}

	profile, err := s.sellerRepo.GetByUserID(p.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", apperrors.NewBusiness(apperrors.CodeSellerProfileNotFound,
				"seller profile not found; complete seller onboarding first")
		}
		return "", fmt.Errorf("failed to resolve seller profile: %w", err)
	}
	return profile.ID, nil
}

// Decide returns nil when the principal may perform the operation on a
// resource owned by ownerSellerID, or a typed error otherwise. Admins are
// allowed unconditionally; sellers and API key principals are allowed only
// on their own resources. The decision never depends on which scheme
// authenticated the principal.
func (s *AuthzService) Decide(p models.Principal, ownerSellerID string, op Operation) error {
	if p.IsAdmin() {
		return nil
	}
	if p.Kind == models.PrincipalAnonymous {
		return apperrors.ErrUnauthorized
	}
	if !p.ActsAsSeller() {
		return apperrors.ErrForbidden
	}

	sellerID, err := s.ResolveSellerID(p)
	if err != nil {
		return err
	}
	if sellerID != ownerSellerID {
		return apperrors.ErrForbidden
	}
	return nil
}

// DecideCustomer returns nil when the principal may act on a resource owned
// by the customer ownerCustomerID.
func (s *AuthzService) DecideCustomer(p models.Principal, ownerCustomerID string) error {
	if p.IsAdmin() {
		return nil
	}
	if p.Kind == models.PrincipalAnonymous {
		return apperrors.ErrUnauthorized
	}
	if p.Kind == models.PrincipalCustomer && p.UserID == ownerCustomerID {
		return nil
	}
	return apperrors.ErrForbidden
}
