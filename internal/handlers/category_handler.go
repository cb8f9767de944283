package handlers

import (
	"log"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories. Reads are public;
// mutations are registered on an admin-gated router.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/hierarchy", h.HandleGetHierarchy)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Get("/:id/children", h.HandleGetChildren)
	categoryRoutes.Get("/:id/ancestors", h.HandleGetAncestors)
}

// RegisterAdminRoutes registers the category mutation routes. The router
// passed in must already require an admin principal.
func (h *CategoryHandler) RegisterAdminRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetCategories retrieves all categories as a flat list.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetHierarchy retrieves the category forest with children attached.
func (h *CategoryHandler) HandleGetHierarchy(c *fiber.Ctx) error {
	nodes, err := h.service.Hierarchy()
	if err != nil {
		log.Printf("Error getting category hierarchy: %v", err)
		return respondError(c, err)
	}
	return c.JSON(nodes)
}

// HandleGetCategoryByID retrieves a single category.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleGetChildren retrieves the direct children of a category.
func (h *CategoryHandler) HandleGetChildren(c *fiber.Ctx) error {
	children, err := h.service.ChildrenOf(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(children)
}

// HandleGetAncestors retrieves the parent chain of a category.
func (h *CategoryHandler) HandleGetAncestors(c *fiber.Ctx) error {
	ancestors, err := h.service.AncestorsOf(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ancestors)
}

// CategoryRequest represents the request body for category mutations.
type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=150"`
	SeoSlug  string  `json:"seo_slug" validate:"required,min=2,max=150"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
	IsActive bool    `json:"is_active"`
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category := models.Category{
		Name:     req.Name,
		SeoSlug:  req.SeoSlug,
		ParentID: req.ParentID,
	}
	if err := h.service.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates an existing category, including moving it to
// a new parent.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category := models.Category{
		ID:       c.Params("id"),
		Name:     req.Name,
		SeoSlug:  req.SeoSlug,
		ParentID: req.ParentID,
		IsActive: req.IsActive,
	}
	if err := h.service.UpdateCategory(&category); err != nil {
		log.Printf("Error updating category %s: %v", category.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Category updated successfully",
	})
}

// HandleDeleteCategory deletes a category without children.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	if err := h.service.DeleteCategory(categoryID); err != nil {
		log.Printf("Error deleting category %s: %v", categoryID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
