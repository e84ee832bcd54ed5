package medistore

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/domain/order"
)

// ListUsers lists every account
func (c *Client) ListUsers(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	if _, err := c.do(ctx, call{
		op:     "admin.list_users",
		method: http.MethodGet,
		url:    c.api("/api/admin/users"),
	}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Stats reads the admin dashboard summary
func (c *Client) Stats(ctx context.Context) (*identity.AdminStats, error) {
	var stats identity.AdminStats
	if _, err := c.do(ctx, call{
		op:     "admin.stats",
		method: http.MethodGet,
		url:    c.api("/api/admin/stats"),
	}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AllOrders lists every order on the platform
func (c *Client) AllOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if _, err := c.do(ctx, call{
		op:     "admin.list_orders",
		method: http.MethodGet,
		url:    c.api("/api/admin/orders"),
	}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateUserBanStatus bans or unbans an account
func (c *Client) UpdateUserBanStatus(ctx context.Context, userID string, banned bool) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyID
	}
	_, err := c.do(ctx, call{
		op:     "admin.update_ban_status",
		method: http.MethodPatch,
		url:    c.api("/api/admin/users/" + url.PathEscape(userID) + "/ban"),
		body:   map[string]bool{"isBanned": banned},
		attrs:  []attribute.KeyValue{attribute.String("user.id", userID), attribute.Bool("user.banned", banned)},
	}, nil)
	return err
}

// ApproveSeller approves a pending seller account
func (c *Client) ApproveSeller(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyID
	}
	_, err := c.do(ctx, call{
		op:     "admin.approve_seller",
		method: http.MethodPatch,
		url:    c.api("/api/admin/sellers/" + url.PathEscape(userID) + "/approve"),
		attrs:  []attribute.KeyValue{attribute.String("user.id", userID)},
	}, nil)
	return err
}
