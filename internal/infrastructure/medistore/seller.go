package medistore

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medistore/storefront/internal/domain/catalog"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/domain/shared"
)

// ErrStatusNotSettable is returned for statuses a seller may not set
var ErrStatusNotSettable = shared.NewDomainError("INVALID_STATE", "Order status cannot be set by a seller")

// CreateMedicine lists a new medicine for the calling seller
func (c *Client) CreateMedicine(ctx context.Context, in catalog.MedicineInput) (*catalog.Medicine, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var m catalog.Medicine
	if _, err := c.do(ctx, call{
		op:     "seller.create_medicine",
		method: http.MethodPost,
		url:    c.api("/api/seller/medicines"),
		body:   in,
	}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMedicine replaces the editable fields of a medicine
func (c *Client) UpdateMedicine(ctx context.Context, id string, in catalog.MedicineInput) (*catalog.Medicine, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyProductID
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var m catalog.Medicine
	if _, err := c.do(ctx, call{
		op:     "seller.update_medicine",
		method: http.MethodPatch,
		url:    c.api("/api/seller/medicines/" + url.PathEscape(id)),
		body:   in,
		attrs:  []attribute.KeyValue{attribute.String("medicine.id", id)},
	}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMedicine removes a medicine
func (c *Client) DeleteMedicine(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyProductID
	}
	_, err := c.do(ctx, call{
		op:     "seller.delete_medicine",
		method: http.MethodDelete,
		url:    c.api("/api/seller/medicines/" + url.PathEscape(id)),
		attrs:  []attribute.KeyValue{attribute.String("medicine.id", id)},
	}, nil)
	return err
}

// MyMedicines lists the calling seller's medicines
func (c *Client) MyMedicines(ctx context.Context) ([]catalog.Medicine, error) {
	var ms []catalog.Medicine
	if _, err := c.do(ctx, call{
		op:     "seller.list_medicines",
		method: http.MethodGet,
		url:    c.api("/api/seller/my-medicines"),
	}, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

// SellerOrders lists orders containing the calling seller's medicines
func (c *Client) SellerOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if _, err := c.do(ctx, call{
		op:     "seller.list_orders",
		method: http.MethodGet,
		url:    c.api("/api/seller/orders"),
	}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to status
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrEmptyID
	}
	if !status.IsSellerSettable() {
		return nil, ErrStatusNotSettable
	}
	var o order.Order
	if _, err := c.do(ctx, call{
		op:     "seller.update_order_status",
		method: http.MethodPatch,
		url:    c.api("/api/seller/orders/" + url.PathEscape(orderID) + "/status"),
		body:   map[string]order.Status{"status": status},
		attrs:  []attribute.KeyValue{attribute.String("order.id", orderID), attribute.String("order.status", string(status))},
	}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
