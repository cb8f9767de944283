package services_test

import (
	"errors"
	"testing"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
)

type orderServiceFixture struct {
	service   *services.OrderService
	publisher *recordingPublisher
	product   *models.Product
	sellerOne *models.SellerProfile
	sellerTwo *models.SellerProfile
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	sellerRepo := repositories.NewMockSellerProfileRepository()
	sellerOne := &models.SellerProfile{UserID: "user-1", StoreName: "Store One"}
	sellerTwo := &models.SellerProfile{UserID: "user-2", StoreName: "Store Two"}
	assert.NoError(t, sellerRepo.Create(sellerOne))
	assert.NoError(t, sellerRepo.Create(sellerTwo))

	productRepo := repositories.NewMockProductRepository()
	product := &models.Product{SellerID: sellerOne.ID, CategoryID: "cat-1", Name: "Laptop", Price: 1200.00, IsActive: true}
	assert.NoError(t, productRepo.Create(product))

	publisher := &recordingPublisher{}
	service := services.NewOrderService(
		repositories.NewMockOrderRepository(),
		productRepo,
		services.NewAuthzService(sellerRepo),
		publisher,
	)

	return &orderServiceFixture{
		service:   service,
		publisher: publisher,
		product:   product,
		sellerOne: sellerOne,
		sellerTwo: sellerTwo,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	customer := models.Principal{Kind: models.PrincipalCustomer, UserID: "customer-1"}

	// The customer id comes from the principal, never from the body
	order := &models.Order{ProductID: f.product.ID, CustomerID: "spoofed", Quantity: 2}
	created, err := f.service.CreateOrder(customer, order)
	assert.NoError(t, err)
	assert.Equal(t, "customer-1", created.CustomerID)
	assert.Equal(t, models.OrderStatusPending, created.Status)
	assert.Equal(t, 2, created.Quantity)
	assert.Contains(t, f.publisher.published(), services.EventOrderCreated)

	// Missing quantity defaults to one
	created, err = f.service.CreateOrder(customer, &models.Order{ProductID: f.product.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, created.Quantity)

	// The ordered product must exist
	_, err = f.service.CreateOrder(customer, &models.Order{ProductID: "no-such-product"})
	assert.True(t, apperrors.IsNotFound(err))

	// Sellers do not place orders; anonymous users cannot
	seller := models.Principal{Kind: models.PrincipalSeller, UserID: "user-1"}
	_, err = f.service.CreateOrder(seller, &models.Order{ProductID: f.product.ID})
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	anon := models.Principal{Kind: models.PrincipalAnonymous}
	_, err = f.service.CreateOrder(anon, &models.Order{ProductID: f.product.ID})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestOrderService_GetOrderByID(t *testing.T) {
	f := newOrderServiceFixture(t)
	customer := models.Principal{Kind: models.PrincipalCustomer, UserID: "customer-1"}

	created, err := f.service.CreateOrder(customer, &models.Order{ProductID: f.product.ID, Quantity: 1})
	assert.NoError(t, err)

	// The placing customer can read it
	got, err := f.service.GetOrderByID(customer, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Another customer cannot
	other := models.Principal{Kind: models.PrincipalCustomer, UserID: "customer-2"}
	_, err = f.service.GetOrderByID(other, created.ID)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	// The seller owning the ordered product can; ownership is derived
	// through the product, not stored on the order
	sellerOne := models.Principal{Kind: models.PrincipalSeller, UserID: "user-1"}
	_, err = f.service.GetOrderByID(sellerOne, created.ID)
	assert.NoError(t, err)

	// A different seller cannot
	sellerTwo := models.Principal{Kind: models.PrincipalSeller, UserID: "user-2"}
	_, err = f.service.GetOrderByID(sellerTwo, created.ID)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	// Admins always can
	admin := models.Principal{Kind: models.PrincipalAdmin, UserID: "admin-1"}
	_, err = f.service.GetOrderByID(admin, created.ID)
	assert.NoError(t, err)

	// Anonymous cannot
	anon := models.Principal{Kind: models.PrincipalAnonymous}
	_, err = f.service.GetOrderByID(anon, created.ID)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestOrderService_GetOrdersForSeller(t *testing.T) {
	f := newOrderServiceFixture(t)
	customer := models.Principal{Kind: models.PrincipalCustomer, UserID: "customer-1"}

	_, err := f.service.CreateOrder(customer, &models.Order{ProductID: f.product.ID, Quantity: 1})
	assert.NoError(t, err)
	_, err = f.service.CreateOrder(customer, &models.Order{ProductID: f.product.ID, Quantity: 3})
	assert.NoError(t, err)

	// The owning seller sees the orders on their products
	sellerOne := models.Principal{Kind: models.PrincipalSeller, UserID: "user-1"}
	orders, err := f.service.GetOrdersForSeller(sellerOne)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	// A seller with no matching products sees nothing
	sellerTwo := models.Principal{Kind: models.PrincipalSeller, UserID: "user-2"}
	orders, err = f.service.GetOrdersForSeller(sellerTwo)
	assert.NoError(t, err)
	assert.Empty(t, orders)

	// API key principals work identically
	keyPrincipal := models.Principal{Kind: models.PrincipalApiKey, SellerID: f.sellerOne.ID}
	orders, err = f.service.GetOrdersForSeller(keyPrincipal)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newOrderServiceFixture(t)
	customer := models.Principal{Kind: models.PrincipalCustomer, UserID: "customer-1"}

	created, err := f.service.CreateOrder(customer, &models.Order{ProductID: f.product.ID, Quantity: 1})
	assert.NoError(t, err)

	sellerOne := models.Principal{Kind: models.PrincipalSeller, UserID: "user-1"}
	sellerTwo := models.Principal{Kind: models.PrincipalSeller, UserID: "user-2"}

	// Unknown statuses are rejected before any authorization work
	err = f.service.UpdateOrderStatus(sellerOne, created.ID, "teleported")
	assert.Equal(t, apperrors.CodeInvalidOrderStatus, apperrors.BusinessCode(err))

	// Only the seller owning the ordered product may change the status
	err = f.service.UpdateOrderStatus(sellerTwo, created.ID, models.OrderStatusProcessing)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	assert.NoError(t, f.service.UpdateOrderStatus(sellerOne, created.ID, models.OrderStatusProcessing))
	assert.Contains(t, f.publisher.published(), services.EventOrderStatusChanged)

	got, err := f.service.GetOrderByID(sellerOne, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, got.Status)

	// Admins may as well
	admin := models.Principal{Kind: models.PrincipalAdmin, UserID: "admin-1"}
	assert.NoError(t, f.service.UpdateOrderStatus(admin, created.ID, models.OrderStatusShipped))

	// Customers may not, even their own order
	err = f.service.UpdateOrderStatus(customer, created.ID, models.OrderStatusCancelled)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestOrderService_GetAllOrders(t *testing.T) {
	f := newOrderServiceFixture(t)
	customer := models.Principal{Kind: models.PrincipalCustomer, UserID: "customer-1"}

	_, err := f.service.CreateOrder(customer, &models.Order{ProductID: f.product.ID, Quantity: 1})
	assert.NoError(t, err)

	admin := models.Principal{Kind: models.PrincipalAdmin, UserID: "admin-1"}
	orders, err := f.service.GetAllOrders(admin)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = f.service.GetAllOrders(customer)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = f.service.GetAllOrders(models.Principal{Kind: models.PrincipalAnonymous})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}
