package services

import (
	"encoding/json"
	"log"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// OrderService handles business logic related to orders. The seller side of
// an order is never stored; it is derived through the product's owner at
// read time.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	authz       *AuthzService
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, authz *AuthzService, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		authz:       authz,
		publisher:   publisher,
	}
}

// CreateOrder places an order for the acting customer. The customer id
// comes from the principal, never from the request body.
func (s *OrderService) CreateOrder(p models.Principal, order *models.Order) (*models.Order, error) {
	switch p.Kind {
	case models.PrincipalCustomer, models.PrincipalAdmin:
	case models.PrincipalAnonymous:
		return nil, apperrors.ErrUnauthorized
	default:
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.productRepo.GetByID(order.ProductID); err != nil {
		return nil, err
	}

	if order.Quantity <= 0 {
		order.Quantity = 1
	}
	order.CustomerID = p.UserID
	order.Status = models.OrderStatusPending

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishEvent(EventOrderCreated, map[string]interface{}{
		"order_id":    order.ID,
		"product_id":  order.ProductID,
		"customer_id": order.CustomerID,
		"quantity":    order.Quantity,
		"status":      order.Status,
	})

	return order, nil
}

// GetOrderByID retrieves an order readable by the principal: the customer
// who placed it, the seller owning the ordered product, or an admin.
func (s *OrderService) GetOrderByID(p models.Principal, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if p.IsAdmin() {
		return order, nil
	}
	if p.Kind == models.PrincipalCustomer {
		if order.CustomerID != p.UserID {
			return nil, apperrors.ErrForbidden
		}
		return order, nil
	}
	if p.ActsAsSeller() {
		// The seller side is derived through the product at read time.
		product, err := s.productRepo.GetByID(order.ProductID)
		if err != nil {
			return nil, err
		}
		if err := s.authz.Decide(p, product.SellerID, OpRead); err != nil {
			return nil, err
		}
		return order, nil
	}
	return nil, apperrors.ErrUnauthorized
}

// GetOrdersForCustomer retrieves the orders placed by the acting customer.
func (s *OrderService) GetOrdersForCustomer(p models.Principal) ([]models.Order, error) {
	if p.Kind == models.PrincipalAnonymous {
		return nil, apperrors.ErrUnauthorized
	}
	if p.Kind != models.PrincipalCustomer && !p.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.orderRepo.GetByCustomerID(p.UserID)
}

// GetOrdersForSeller retrieves the orders on the acting seller's products.
// Seller ownership is recomputed here through the product set rather than
// read from the orders themselves.
func (s *OrderService) GetOrdersForSeller(p models.Principal) ([]models.Order, error) {
	sellerID, err := s.authz.ResolveSellerID(p)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	productIDs := make([]string, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}

	return s.orderRepo.GetByProductIDs(productIDs)
}

// GetAllOrders retrieves every order. Admin only.
func (s *OrderService) GetAllOrders(p models.Principal) ([]models.Order, error) {
	if !p.IsAdmin() {
		if p.Kind == models.PrincipalAnonymous {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.ErrForbidden
	}
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus changes the status of an order. Only the seller owning
// the ordered product (or an admin) may do so.
func (s *OrderService) UpdateOrderStatus(p models.Principal, id string, status string) error {
	if !validOrderStatuses[status] {
		return apperrors.NewBusiness(apperrors.CodeInvalidOrderStatus,
			"invalid order status: "+status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(order.ProductID)
	if err != nil {
		return err
	}
	if err := s.authz.Decide(p, product.SellerID, OpStatusChange); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	s.publishEvent(EventOrderStatusChanged, map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}

// publishEvent sends a domain event when a publisher is wired. Event
// delivery is best-effort and never fails the calling operation.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
