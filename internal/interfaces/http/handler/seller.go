package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/medistore/storefront/internal/domain/catalog"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/interfaces/http/dto"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
)

// SellerService is the seller dashboard backend
type SellerService interface {
	CreateMedicine(ctx context.Context, in catalog.MedicineInput) (*catalog.Medicine, error)
	UpdateMedicine(ctx context.Context, id string, in catalog.MedicineInput) (*catalog.Medicine, error)
	DeleteMedicine(ctx context.Context, id string) error
	MyMedicines(ctx context.Context) ([]catalog.Medicine, error)
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error)
	Orders(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
}

// SellerHandler serves the seller dashboard
type SellerHandler struct {
	BaseHandler
	seller SellerService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(seller SellerService) *SellerHandler {
	return &SellerHandler{seller: seller}
}

// ListMedicines returns the seller's own medicines
// GET /seller/medicines
func (h *SellerHandler) ListMedicines(c *gin.Context) {
	medicines, err := h.seller.MyMedicines(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, medicines)
}

// CreateMedicine lists a new medicine under the caller's account
// POST /seller/medicines
func (h *SellerHandler) CreateMedicine(c *gin.Context) {
	var in catalog.MedicineInput
	if !h.bindJSON(c, &in) {
		return
	}
	if sess := middleware.GetSession(c); !sess.Anonymous() {
		in.SellerID = sess.User.ID
	}

	m, err := h.seller.CreateMedicine(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, m)
}

// UpdateMedicine replaces a medicine's details
// PATCH /seller/medicines/:id
func (h *SellerHandler) UpdateMedicine(c *gin.Context) {
	var in catalog.MedicineInput
	if !h.bindJSON(c, &in) {
		return
	}

	m, err := h.seller.UpdateMedicine(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// DeleteMedicine removes a medicine
// DELETE /seller/medicines/:id
func (h *SellerHandler) DeleteMedicine(c *gin.Context) {
	if err := h.seller.DeleteMedicine(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory adds a category
// POST /seller/categories
func (h *SellerHandler) CreateCategory(c *gin.Context) {
	var in catalog.CategoryInput
	if !h.bindJSON(c, &in) {
		return
	}

	category, err := h.seller.CreateCategory(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListOrders returns orders containing the seller's medicines
// GET /seller/orders
func (h *SellerHandler) ListOrders(c *gin.Context) {
	orders, err := h.seller.Orders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// UpdateOrderStatus moves an order to a new status
// PATCH /seller/orders/:id/status
func (h *SellerHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	o, err := h.seller.UpdateOrderStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
