package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/medistore/storefront/internal/domain/order"
)

// OrderService places and lists the caller's orders
type OrderService interface {
	Checkout(ctx context.Context, details order.ShippingDetails) (*order.Confirmation, error)
	MyOrders(ctx context.Context) ([]order.Order, error)
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
}

// OrderHandler handles checkout and order history
type OrderHandler struct {
	BaseHandler
	orders OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout places a cash-on-delivery order for the current cart
// POST /checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	var details order.ShippingDetails
	if !h.bindJSON(c, &details) {
		return
	}

	confirmation, err := h.orders.Checkout(c.Request.Context(), details)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, confirmation)
}

// List returns the caller's orders
// GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.MyOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one of the caller's orders
// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}
