// Package catalog models medicines and categories as the storefront sees them.
package catalog

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medistore/storefront/internal/domain/cart"
	"github.com/medistore/storefront/internal/domain/shared"
)

// Medicine is a catalog item
type Medicine struct {
	ID           string           `json:"id"`
	SellerID     string           `json:"sellerId"`
	CategoryID   string           `json:"categoryId"`
	Name         string           `json:"name"`
	Manufacturer *string          `json:"manufacturer"`
	Description  *string          `json:"description"`
	OTCNote      *string          `json:"otcNote"`
	Price        cart.LooseNumber `json:"price"`
	Stock        int64            `json:"stock"`
	ImageURL     *string          `json:"imageUrl"`
	IsActive     bool             `json:"isActive"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Category     *CategoryRef     `json:"category,omitempty"`
}

// CategoryRef is the category name embedded in a medicine
type CategoryRef struct {
	Name string `json:"name"`
}

// UnitPrice returns the coerced, non-negative price
func (m Medicine) UnitPrice() decimal.Decimal {
	return m.Price.NonNegativeDecimal()
}

// InStock reports whether the medicine can be added to a cart
func (m Medicine) InStock() bool {
	return m.IsActive && m.Stock > 0
}

// MedicineInput is the create/update payload a seller submits
type MedicineInput struct {
	SellerID     string  `json:"sellerId,omitempty"`
	CategoryID   string  `json:"categoryId" validate:"required"`
	Name         string  `json:"name" validate:"required,min=2"`
	Manufacturer *string `json:"manufacturer"`
	Description  *string `json:"description"`
	OTCNote      *string `json:"otcNote"`
	Price        string  `json:"price" validate:"required,numeric"`
	Stock        int64   `json:"stock" validate:"gte=0"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
	IsActive     bool    `json:"isActive"`
}

// Category groups medicines
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// CategoryInput is the payload to create a category
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

var validate = shared.NewValidator()

// Validate checks a medicine payload. The price must also be non-negative.
func (in MedicineInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if d, err := decimal.NewFromString(in.Price); err != nil || d.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// Validate checks a category payload
func (in CategoryInput) Validate() error {
	return validate.Struct(in)
}

// SortOrder is asc or desc
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListQuery filters the public medicine listing
type ListQuery struct {
	Page      int       `form:"page"`
	Limit     int       `form:"limit"`
	Search    string    `form:"search"`
	IsActive  *bool     `form:"isActive"`
	SortBy    string    `form:"sortBy"`
	SortOrder SortOrder `form:"sortOrder"`
	Skip      int       `form:"skip"`
}

// Values encodes the query, omitting empty fields
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*q.IsActive))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder == SortAsc || q.SortOrder == SortDesc {
		v.Set("sortOrder", string(q.SortOrder))
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	return v
}

// CacheKey returns a stable key for the query
func (q ListQuery) CacheKey() string {
	// url.Values.Encode sorts by key
	return "medicines?" + q.Values().Encode()
}

// Pagination describes the position of a Page
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Page is one page of the public listing
type Page struct {
	Items      []Medicine `json:"data"`
	Pagination Pagination `json:"pagination"`
}
