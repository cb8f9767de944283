package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SellerHandler handles HTTP requests for seller profiles.
type SellerHandler struct {
	service  *services.SellerService
	validate *validator.Validate
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(service *services.SellerService) *SellerHandler {
	return &SellerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the seller profile routes on an authenticated
// router.
func (h *SellerHandler) RegisterRoutes(router fiber.Router) {
	sellerRoutes := router.Group("/sellers")
	sellerRoutes.Post("/profile", h.HandleCreateProfile)
	sellerRoutes.Get("/profile", h.HandleGetProfile)
}

// CreateProfileRequest represents the request body for profile creation.
type CreateProfileRequest struct {
	StoreName string `json:"store_name" validate:"required,min=2,max=150"`
	LogoURL   string `json:"logo_url" validate:"omitempty,url"`
}

// HandleCreateProfile creates the seller profile for the acting user.
func (h *SellerHandler) HandleCreateProfile(c *fiber.Ctx) error {
	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	profile := models.SellerProfile{
		StoreName: req.StoreName,
		LogoURL:   req.LogoURL,
	}
	if err := h.service.CreateProfile(middleware.PrincipalFromCtx(c), &profile); err != nil {
		log.Printf("Error creating seller profile: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// HandleGetProfile retrieves the acting user's seller profile.
func (h *SellerHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(middleware.PrincipalFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
