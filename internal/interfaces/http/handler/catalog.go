package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/medistore/storefront/internal/domain/catalog"
)

// CatalogService reads the public catalog
type CatalogService interface {
	ListMedicines(ctx context.Context, q catalog.ListQuery) (*catalog.Page, error)
	GetMedicine(ctx context.Context, id string) (*catalog.Medicine, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

// CatalogHandler serves the public shop pages
type CatalogHandler struct {
	BaseHandler
	catalog CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts returns one page of medicines
// GET /products?page=&limit=&search=&sortBy=&sortOrder=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var q catalog.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.catalog.ListMedicines(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Pagination.Total, page.Pagination.Page,
		page.Pagination.Limit, page.Pagination.TotalPages)
}

// GetProduct returns one medicine
// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	m, err := h.catalog.GetMedicine(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// ListCategories returns all categories
// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
