package handlers

import (
	"log"
	"time"

	"lapak/internal/middleware"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ApiKeyHandler handles HTTP requests for a seller's API keys. Every
// operation is scoped to the acting seller; keys owned by other sellers
// behave as if they do not exist.
type ApiKeyHandler struct {
	service  *services.ApiKeyService
	authz    *services.AuthzService
	validate *validator.Validate
}

// NewApiKeyHandler creates a new ApiKeyHandler.
func NewApiKeyHandler(service *services.ApiKeyService, authz *services.AuthzService) *ApiKeyHandler {
	return &ApiKeyHandler{
		service:  service,
		authz:    authz,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the API key routes on an authenticated router.
func (h *ApiKeyHandler) RegisterRoutes(router fiber.Router) {
	keyRoutes := router.Group("/apikeys")
	keyRoutes.Post("/", h.HandleGenerateKey)
	keyRoutes.Get("/", h.HandleListKeys)
	keyRoutes.Get("/:id", h.HandleGetKey)
	keyRoutes.Post("/:id/activate", h.HandleActivateKey)
	keyRoutes.Post("/:id/deactivate", h.HandleDeactivateKey)
	keyRoutes.Delete("/:id", h.HandleDeleteKey)
}

// GenerateKeyRequest represents the request body for key generation.
type GenerateKeyRequest struct {
	Name              string     `json:"name" validate:"required,min=2,max=100"`
	Description       string     `json:"description" validate:"omitempty,max=500"`
	RequestsPerMinute int        `json:"requests_per_minute" validate:"omitempty,gt=0"`
	RequestsPerDay    int        `json:"requests_per_day" validate:"omitempty,gt=0"`
	ExpiresAt         *time.Time `json:"expires_at"`
}

// HandleGenerateKey issues a new API key for the acting seller.
func (h *ApiKeyHandler) HandleGenerateKey(c *fiber.Ctx) error {
	var req GenerateKeyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing generate key request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	sellerID, err := h.authz.ResolveSellerID(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	apiKey, err := h.service.Generate(sellerID, services.GenerateKeyInput{
		Name:              req.Name,
		Description:       req.Description,
		RequestsPerMinute: req.RequestsPerMinute,
		RequestsPerDay:    req.RequestsPerDay,
		ExpiresAt:         req.ExpiresAt,
	})
	if err != nil {
		log.Printf("Error generating API key: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(apiKey)
}

// HandleListKeys retrieves all of the acting seller's keys.
func (h *ApiKeyHandler) HandleListKeys(c *fiber.Ctx) error {
	sellerID, err := h.authz.ResolveSellerID(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	keys, err := h.service.ListForSeller(sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(keys)
}

// HandleGetKey retrieves one of the acting seller's keys.
func (h *ApiKeyHandler) HandleGetKey(c *fiber.Ctx) error {
	sellerID, err := h.authz.ResolveSellerID(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	key, err := h.service.GetForSeller(sellerID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(key)
}

// HandleActivateKey turns one of the acting seller's keys back on.
func (h *ApiKeyHandler) HandleActivateKey(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// HandleDeactivateKey turns one of the acting seller's keys off.
func (h *ApiKeyHandler) HandleDeactivateKey(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *ApiKeyHandler) setActive(c *fiber.Ctx, active bool) error {
	sellerID, err := h.authz.ResolveSellerID(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	keyID := c.Params("id")
	if active {
		err = h.service.Activate(sellerID, keyID)
	} else {
		err = h.service.Deactivate(sellerID, keyID)
	}
	if err != nil {
		log.Printf("Error changing API key %s state: %v", keyID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "API key updated successfully",
	})
}

// HandleDeleteKey removes one of the acting seller's keys.
func (h *ApiKeyHandler) HandleDeleteKey(c *fiber.Ctx) error {
	sellerID, err := h.authz.ResolveSellerID(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	keyID := c.Params("id")
	if err := h.service.Delete(sellerID, keyID); err != nil {
		log.Printf("Error deleting API key %s: %v", keyID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "API key deleted successfully",
	})
}
