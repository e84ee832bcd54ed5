package medistore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medistore/storefront/internal/domain/cart"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/domain/shared"
)

// Direction is a one-step quantity change
type Direction int

const (
	Increment Direction = iota + 1
	Decrement
)

func (d Direction) wire() (string, bool) {
	switch d {
	case Increment:
		return "inc", true
	case Decrement:
		return "dec", true
	default:
		return "", false
	}
}

func (d Direction) String() string {
	switch d {
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Precondition errors, returned before any network call
var (
	ErrEmptyLineID      = shared.NewDomainError("INVALID_INPUT", "Cart line id is required")
	ErrEmptyProductID   = shared.NewDomainError("INVALID_INPUT", "Product id is required")
	ErrInvalidDirection = shared.NewDomainError("INVALID_INPUT", "Quantity change must be increment or decrement")
	ErrInvalidQuantity  = shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	ErrEmptyID          = shared.NewDomainError("INVALID_INPUT", "Id is required")
)

// QuantityChange is the remote answer to a quantity change. Removed is true
// when the API reports the line no longer exists (data: null).
type QuantityChange struct {
	Line    *cart.RawLineItem
	Removed bool
	Message string
}

type cartPayload struct {
	ID    string             `json:"id"`
	Items []cart.RawLineItem `json:"items"`
}

// FetchCart reads the caller's cart lines in server order
func (c *Client) FetchCart(ctx context.Context) ([]cart.RawLineItem, error) {
	var payload cartPayload
	_, err := c.do(ctx, call{
		op:     "cart.fetch",
		method: http.MethodGet,
		url:    c.api("/api/orders/cart"),
	}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// ChangeQuantity moves a line one step. The line is identified by its cart
// line id.
func (c *Client) ChangeQuantity(ctx context.Context, lineID string, dir Direction) (QuantityChange, error) {
	if strings.TrimSpace(lineID) == "" {
		return QuantityChange{}, ErrEmptyLineID
	}
	action, ok := dir.wire()
	if !ok {
		return QuantityChange{}, ErrInvalidDirection
	}

	var line cart.RawLineItem
	env, err := c.do(ctx, call{
		op:     "cart.change_quantity",
		method: http.MethodPatch,
		url:    c.api("/api/orders/cart/items/" + url.PathEscape(lineID)),
		body:   map[string]string{"action": action},
		attrs:  []attribute.KeyValue{attribute.String("cart.line_id", lineID), attribute.String("cart.action", action)},
	}, &line)
	if err != nil {
		return QuantityChange{}, err
	}
	if explicitNull(env.Data) {
		return QuantityChange{Removed: true, Message: env.Message}, nil
	}
	if isNull(env.Data) {
		return QuantityChange{Message: env.Message}, nil
	}
	return QuantityChange{Line: &line, Message: env.Message}, nil
}

// RemoveLine deletes the cart line holding productID. Removal is keyed by the
// catalog id, not the line id.
func (c *Client) RemoveLine(ctx context.Context, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return ErrEmptyProductID
	}
	_, err := c.do(ctx, call{
		op:     "cart.remove_line",
		method: http.MethodDelete,
		url:    c.api("/api/orders/cart/items"),
		body:   map[string]string{"productId": productID},
		attrs:  []attribute.KeyValue{attribute.String("cart.product_id", productID)},
	}, nil)
	return err
}

// AddLine puts quantity units of productID into userID's cart
func (c *Client) AddLine(ctx context.Context, productID, userID string, quantity int64) error {
	if strings.TrimSpace(userID) == "" {
		return shared.ErrLoginRequired
	}
	if strings.TrimSpace(productID) == "" {
		return ErrEmptyProductID
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	_, err := c.do(ctx, call{
		op:     "cart.add_line",
		method: http.MethodPost,
		url:    c.api("/api/orders/"),
		body: map[string]any{
			"userId":     userID,
			"medicineId": productID,
			"quantity":   quantity,
		},
		attrs: []attribute.KeyValue{attribute.String("cart.product_id", productID), attribute.Int64("cart.quantity", quantity)},
	}, nil)
	return err
}

// Checkout places a cash-on-delivery order for the caller's cart. The
// details are normalized and validated before the call.
func (c *Client) Checkout(ctx context.Context, details order.ShippingDetails) (*order.Confirmation, error) {
	details = details.Normalized()
	if err := details.Validate(); err != nil {
		return nil, err
	}

	var placed order.Order
	env, err := c.do(ctx, call{
		op:     "order.checkout",
		method: http.MethodPost,
		url:    c.api("/api/orders/checkout"),
		body:   order.CheckoutRequest{ShippingDetails: details, PaymentMethod: order.PaymentMethod},
	}, &placed)
	if err != nil {
		return nil, err
	}

	conf := &order.Confirmation{Message: firstNonEmpty(env.Message, "Order placed successfully")}
	if placed.ID != "" {
		conf.Order = &placed
	}
	return conf, nil
}

// MyOrders lists the caller's orders
func (c *Client) MyOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if _, err := c.do(ctx, call{
		op:     "order.list_mine",
		method: http.MethodGet,
		url:    c.api("/api/orders/my-orders"),
	}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder reads one of the caller's orders
func (c *Client) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrEmptyID
	}
	var o order.Order
	if _, err := c.do(ctx, call{
		op:     "order.get",
		method: http.MethodGet,
		url:    c.api("/api/orders/" + url.PathEscape(orderID)),
		attrs:  []attribute.KeyValue{attribute.String("order.id", orderID)},
	}, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
