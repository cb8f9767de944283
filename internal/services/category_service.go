package services

import (
	"fmt"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CategoryService enforces the catalog tree invariants: parents must exist,
// a node can never become its own ancestor, and a node with children cannot
// be deleted.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// ChildrenOf retrieves the direct children of the given category.
func (s *CategoryService) ChildrenOf(id string) ([]models.Category, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByParentID(id)
}

// AncestorsOf retrieves the parent chain of the given category, nearest
// ancestor first. The walk is bounded by the total node count so it
// terminates even over a corrupted parent chain.
func (s *CategoryService) AncestorsOf(id string) ([]models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	var ancestors []models.Category
	current := category.ParentID
	for steps := 0; current != nil && steps < len(all); steps++ {
		parent, ok := byID[*current]
		if !ok {
			break
		}
		ancestors = append(ancestors, parent)
		current = parent.ParentID
	}
	return ancestors, nil
}

// Hierarchy returns the root categories with their children attached
// recursively. Child order follows the store's iteration order; nothing is
// sorted.
func (s *CategoryService) Hierarchy() ([]models.CategoryNode, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
	}

	var build func(c models.Category, depth int) models.CategoryNode
	build = func(c models.Category, depth int) models.CategoryNode {
		node := models.CategoryNode{Category: c, Children: []models.CategoryNode{}}
		if depth >= len(all) {
			// Corrupted parent chains stop here instead of recursing forever.
			return node
		}
		for _, child := range childrenOf[c.ID] {
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}

	nodes := make([]models.CategoryNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root, 0))
	}
	return nodes, nil
}

// CreateCategory creates a new category. A referenced parent must exist.
// New categories start as active leaves.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if category.Name == "" {
		return apperrors.NewBusiness(apperrors.CodeCategoryNameRequired, "category name is required")
	}
	if category.SeoSlug == "" {
		return apperrors.NewBusiness(apperrors.CodeSeoSlugRequired, "SEO slug is required")
	}

	if category.ParentID != nil {
		if _, err := s.repo.GetByID(*category.ParentID); err != nil {
			return err
		}
	}

	category.IsActive = true
	return s.repo.Create(category)
}

// UpdateCategory updates an existing category, including reparenting it.
// Reparenting is rejected when the new parent is the category itself, does
// not exist, or is a descendant of the category (which would close a cycle).
// The ancestor walk runs even when the category currently has no children:
// the cycle is introduced by the new parent assignment, not by the node's
// own subtree. The chain is re-read here, immediately before the write, to
// narrow the race between check and commit.
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	if category.Name == "" {
		return apperrors.NewBusiness(apperrors.CodeCategoryNameRequired, "category name is required")
	}
	if category.SeoSlug == "" {
		return apperrors.NewBusiness(apperrors.CodeSeoSlugRequired, "SEO slug is required")
	}

	existing, err := s.repo.GetByID(category.ID)
	if err != nil {
		return err
	}

	if category.ParentID != nil {
		if *category.ParentID == category.ID {
			return apperrors.NewBusiness(apperrors.CodeInvalidParentCategory,
				"category cannot be its own parent")
		}
		if _, err := s.repo.GetByID(*category.ParentID); err != nil {
			return err
		}
		circular, err := s.isCircularReference(category.ID, *category.ParentID)
		if err != nil {
			return err
		}
		if circular {
			return apperrors.NewBusiness(apperrors.CodeCircularReference,
				"category cannot be moved under one of its own descendants")
		}
	}

	existing.Name = category.Name
	existing.SeoSlug = category.SeoSlug
	existing.ParentID = category.ParentID
	existing.IsActive = category.IsActive
	return s.repo.Update(existing)
}

// DeleteCategory deletes a category. Categories that still have children
// cannot be deleted.
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	children, err := s.repo.GetByParentID(id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return apperrors.NewBusiness(apperrors.CodeCategoryHasChildren,
			"category with child categories cannot be deleted")
	}

	return s.repo.Delete(id)
}

// isCircularReference walks the ancestor chain upward from parentID and
// reports whether categoryID appears in it. The walk is bounded by a visited
// set and the total node count, so it terminates even if the stored chain is
// already corrupt.
func (s *CategoryService) isCircularReference(categoryID, parentID string) (bool, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to load categories for cycle check: %w", err)
	}
	byID := make(map[string]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	visited := make(map[string]bool, len(all))
	current := parentID
	for steps := 0; steps <= len(all); steps++ {
		if current == categoryID {
			return true, nil
		}
		if visited[current] {
			break
		}
		visited[current] = true

		node, ok := byID[current]
		if !ok || node.ParentID == nil {
			break
		}
		current = *node.ParentID
	}
	return false, nil
}
