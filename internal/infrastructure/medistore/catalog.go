package medistore

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medistore/storefront/internal/domain/catalog"
)

// ListMedicines reads one page of the public catalog
func (c *Client) ListMedicines(ctx context.Context, q catalog.ListQuery) (*catalog.Page, error) {
	target := c.api("/api/medicines")
	if enc := q.Values().Encode(); enc != "" {
		target += "?" + enc
	}
	var page catalog.Page
	if _, err := c.do(ctx, call{
		op:     "catalog.list_medicines",
		method: http.MethodGet,
		url:    target,
	}, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []catalog.Medicine{}
	}
	return &page, nil
}

// GetMedicine reads one medicine
func (c *Client) GetMedicine(ctx context.Context, id string) (*catalog.Medicine, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyProductID
	}
	var m catalog.Medicine
	if _, err := c.do(ctx, call{
		op:     "catalog.get_medicine",
		method: http.MethodGet,
		url:    c.api("/api/medicines/" + url.PathEscape(id)),
		attrs:  []attribute.KeyValue{attribute.String("medicine.id", id)},
	}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListCategories reads every category
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var cats []catalog.Category
	if _, err := c.do(ctx, call{
		op:     "catalog.list_categories",
		method: http.MethodGet,
		url:    c.api("/api/categories"),
	}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory adds a category
func (c *Client) CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var cat catalog.Category
	if _, err := c.do(ctx, call{
		op:     "catalog.create_category",
		method: http.MethodPost,
		url:    c.api("/api/categories/add-category"),
		body:   in,
	}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
