package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ExternalProductHandler exposes product management to API key integrations.
// The routes live under the external path prefix, so the principal here is
// always an api_key principal with the seller already resolved.
type ExternalProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewExternalProductHandler creates a new ExternalProductHandler.
func NewExternalProductHandler(service *services.ProductService) *ExternalProductHandler {
	return &ExternalProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the external product routes.
func (h *ExternalProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts retrieves the key owner's products.
func (h *ExternalProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProductsForSeller(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves one of the key owner's products.
func (h *ExternalProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product owned by the key owner.
func (h *ExternalProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing external create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.service.CreateProduct(middleware.PrincipalFromCtx(c), &product); err != nil {
		log.Printf("Error creating product via API key: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates one of the key owner's products.
func (h *ExternalProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing external update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.service.UpdateProduct(middleware.PrincipalFromCtx(c), &product); err != nil {
		log.Printf("Error updating product %s via API key: %v", product.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
	})
}

// HandleDeleteProduct deletes one of the key owner's products.
func (h *ExternalProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(middleware.PrincipalFromCtx(c), productID); err != nil {
		log.Printf("Error deleting product %s via API key: %v", productID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
