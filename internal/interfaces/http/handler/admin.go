package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/interfaces/http/dto"
)

// AdminService is the admin dashboard backend
type AdminService interface {
	Users(ctx context.Context) ([]identity.User, error)
	Stats(ctx context.Context) (*identity.AdminStats, error)
	Orders(ctx context.Context) ([]order.Order, error)
	SetBanned(ctx context.Context, userID string, banned bool) error
	ApproveSeller(ctx context.Context, userID string) error
}

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	BaseHandler
	admin AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers returns every account
// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.Users(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Stats returns the dashboard summary
// GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// ListOrders returns every order
// GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.admin.Orders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// SetBanned bans or unbans a user
// PATCH /admin/users/:id/ban
func (h *AdminHandler) SetBanned(c *gin.Context) {
	var req dto.BanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.admin.SetBanned(c.Request.Context(), c.Param("id"), *req.IsBanned); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": c.Param("id"), "isBanned": *req.IsBanned})
}

// ApproveSeller approves a pending seller account
// PATCH /admin/sellers/:id/approve
func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	if err := h.admin.ApproveSeller(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": c.Param("id"), "isApproved": true})
}
