package services

import (
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// ProductService handles business logic related to products. Ownership is
// decided by the authorization engine; a product's SellerID always comes
// from the acting principal, never from the request body.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	authz        *AuthzService
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, authz *AuthzService) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		authz:        authz,
	}
}

// GetActiveProducts retrieves the public catalog: active products only.
func (s *ProductService) GetActiveProducts() ([]models.Product, error) {
	return s.productRepo.GetAllActive()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductsForSeller retrieves the products owned by the acting seller.
func (s *ProductService) GetProductsForSeller(p models.Principal) ([]models.Product, error) {
	sellerID, err := s.authz.ResolveSellerID(p)
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetBySellerID(sellerID)
}

// CreateProduct creates a new product owned by the acting seller. The
// referenced category must exist.
func (s *ProductService) CreateProduct(p models.Principal, product *models.Product) error {
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return err
	}

	sellerID, err := s.authz.ResolveSellerID(p)
	if err != nil {
		return err
	}

	product.SellerID = sellerID
	product.IsActive = true
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product after an ownership check
// against the persisted owner. SellerID is immutable.
func (s *ProductService) UpdateProduct(p models.Principal, product *models.Product) error {
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}

	if err := s.authz.Decide(p, existing.SellerID, OpUpdate); err != nil {
		return err
	}

	if product.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
			return err
		}
	}

	existing.CategoryID = product.CategoryID
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Stock = product.Stock
	existing.IsActive = product.IsActive
	return s.productRepo.Update(existing)
}

// DeleteProduct deletes a product after an ownership check against the
// persisted owner.
func (s *ProductService) DeleteProduct(p models.Principal, id string) error {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.authz.Decide(p, existing.SellerID, OpDelete); err != nil {
		return err
	}

	return s.productRepo.Delete(id)
}
