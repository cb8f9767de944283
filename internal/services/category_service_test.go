package services_test

import (
	"testing"

	"lapak/internal/apperrors"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
)

// seedCategoryChain creates root -> electronics -> phones and returns the
// three categories.
func seedCategoryChain(t *testing.T, service *services.CategoryService) (root, electronics, phones *models.Category) {
	t.Helper()

	root = &models.Category{Name: "Root", SeoSlug: "root"}
	assert.NoError(t, service.CreateCategory(root))

	electronics = &models.Category{Name: "Electronics", SeoSlug: "electronics", ParentID: &root.ID}
	assert.NoError(t, service.CreateCategory(electronics))

	phones = &models.Category{Name: "Phones", SeoSlug: "phones", ParentID: &electronics.ID}
	assert.NoError(t, service.CreateCategory(phones))

	return root, electronics, phones
}

func TestCategoryService_CreateCategory(t *testing.T) {
	service := services.NewCategoryService(repositories.NewMockCategoryRepository())

	// Test successful root creation; new categories start active
	root := &models.Category{Name: "Root", SeoSlug: "root"}
	assert.NoError(t, service.CreateCategory(root))
	assert.NotEmpty(t, root.ID)
	assert.True(t, root.IsActive)

	// Test child creation under an existing parent
	child := &models.Category{Name: "Child", SeoSlug: "child", ParentID: &root.ID}
	assert.NoError(t, service.CreateCategory(child))

	// Test missing name and slug
	err := service.CreateCategory(&models.Category{SeoSlug: "no-name"})
	assert.Equal(t, apperrors.CodeCategoryNameRequired, apperrors.BusinessCode(err))

	err = service.CreateCategory(&models.Category{Name: "No Slug"})
	assert.Equal(t, apperrors.CodeSeoSlugRequired, apperrors.BusinessCode(err))

	// Test creation under a parent that does not exist
	missing := "no-such-category"
	err = service.CreateCategory(&models.Category{Name: "Orphan", SeoSlug: "orphan", ParentID: &missing})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_UpdateCategory_CyclePrevention(t *testing.T) {
	service := services.NewCategoryService(repositories.NewMockCategoryRepository())
	root, electronics, phones := seedCategoryChain(t, service)

	// Moving root under its grandchild would close the cycle
	// root -> electronics -> phones -> root
	err := service.UpdateCategory(&models.Category{
		ID:       root.ID,
		Name:     root.Name,
		SeoSlug:  root.SeoSlug,
		ParentID: &phones.ID,
		IsActive: true,
	})
	assert.Equal(t, apperrors.CodeCircularReference, apperrors.BusinessCode(err))

	// Moving electronics under its direct child fails the same way
	err = service.UpdateCategory(&models.Category{
		ID:       electronics.ID,
		Name:     electronics.Name,
		SeoSlug:  electronics.SeoSlug,
		ParentID: &phones.ID,
		IsActive: true,
	})
	assert.Equal(t, apperrors.CodeCircularReference, apperrors.BusinessCode(err))

	// A category can never be its own parent
	err = service.UpdateCategory(&models.Category{
		ID:       root.ID,
		Name:     root.Name,
		SeoSlug:  root.SeoSlug,
		ParentID: &root.ID,
		IsActive: true,
	})
	assert.Equal(t, apperrors.CodeInvalidParentCategory, apperrors.BusinessCode(err))

	// Reparenting to a nonexistent parent is a not-found, not a cycle error
	missing := "no-such-category"
	err = service.UpdateCategory(&models.Category{
		ID:       phones.ID,
		Name:     phones.Name,
		SeoSlug:  phones.SeoSlug,
		ParentID: &missing,
		IsActive: true,
	})
	assert.True(t, apperrors.IsNotFound(err))

	// A legal reparent still works: phones directly under root
	assert.NoError(t, service.UpdateCategory(&models.Category{
		ID:       phones.ID,
		Name:     phones.Name,
		SeoSlug:  phones.SeoSlug,
		ParentID: &root.ID,
		IsActive: true,
	}))
	moved, err := service.GetCategoryByID(phones.ID)
	assert.NoError(t, err)
	assert.Equal(t, root.ID, *moved.ParentID)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	service := services.NewCategoryService(repositories.NewMockCategoryRepository())
	root, electronics, phones := seedCategoryChain(t, service)

	// A category with children cannot be deleted
	err := service.DeleteCategory(electronics.ID)
	assert.Equal(t, apperrors.CodeCategoryHasChildren, apperrors.BusinessCode(err))

	// Deleting leaf-first succeeds all the way up
	assert.NoError(t, service.DeleteCategory(phones.ID))
	assert.NoError(t, service.DeleteCategory(electronics.ID))
	assert.NoError(t, service.DeleteCategory(root.ID))

	// Deleting something that does not exist
	err = service.DeleteCategory("no-such-category")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_AncestorsOf(t *testing.T) {
	service := services.NewCategoryService(repositories.NewMockCategoryRepository())
	root, electronics, phones := seedCategoryChain(t, service)

	// Nearest ancestor first
	ancestors, err := service.AncestorsOf(phones.ID)
	assert.NoError(t, err)
	assert.Len(t, ancestors, 2)
	assert.Equal(t, electronics.ID, ancestors[0].ID)
	assert.Equal(t, root.ID, ancestors[1].ID)

	// Roots have no ancestors
	ancestors, err = service.AncestorsOf(root.ID)
	assert.NoError(t, err)
	assert.Empty(t, ancestors)

	_, err = service.AncestorsOf("no-such-category")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_ChildrenOf(t *testing.T) {
	service := services.NewCategoryService(repositories.NewMockCategoryRepository())
	root, electronics, phones := seedCategoryChain(t, service)

	children, err := service.ChildrenOf(root.ID)
	assert.NoError(t, err)
	assert.Len(t, children, 1)
	assert.Equal(t, electronics.ID, children[0].ID)

	// Only direct children, never grandchildren
	for _, c := range children {
		assert.NotEqual(t, phones.ID, c.ID)
	}

	// Leaves have no children
	children, err = service.ChildrenOf(phones.ID)
	assert.NoError(t, err)
	assert.Empty(t, children)

	// The category itself must exist
	_, err = service.ChildrenOf("no-such-category")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCategoryService_Hierarchy(t *testing.T) {
	service := services.NewCategoryService(repositories.NewMockCategoryRepository())
	root, electronics, phones := seedCategoryChain(t, service)

	second := &models.Category{Name: "Second Root", SeoSlug: "second-root"}
	assert.NoError(t, service.CreateCategory(second))

	nodes, err := service.Hierarchy()
	assert.NoError(t, err)
	assert.Len(t, nodes, 2)

	byID := make(map[string]models.CategoryNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	rootNode, ok := byID[root.ID]
	assert.True(t, ok)
	assert.Len(t, rootNode.Children, 1)
	assert.Equal(t, electronics.ID, rootNode.Children[0].ID)
	assert.Len(t, rootNode.Children[0].Children, 1)
	assert.Equal(t, phones.ID, rootNode.Children[0].Children[0].ID)

	secondNode, ok := byID[second.ID]
	assert.True(t, ok)
	assert.Empty(t, secondNode.Children)
}
