// Package order places orders and adds medicines to the shopper's cart.
package order

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/domain/shared"
)

// Gateway is the remote order API
type Gateway interface {
	AddLine(ctx context.Context, productID, userID string, quantity int64) error
	Checkout(ctx context.Context, details order.ShippingDetails) (*order.Confirmation, error)
	MyOrders(ctx context.Context) ([]order.Order, error)
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
}

// CartEvicter forgets the cached cart of a credential
type CartEvicter interface {
	Evict(cred identity.Credential)
}

// Service handles checkout and order history
type Service struct {
	gateway Gateway
	carts   CartEvicter
	logger  *zap.Logger
}

// NewService creates an order service. carts may be nil.
func NewService(gateway Gateway, carts CartEvicter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, carts: carts, logger: logger}
}

// AddToCart puts quantity units of a medicine in the session's cart. An
// anonymous session is refused before any remote call.
func (s *Service) AddToCart(ctx context.Context, session *identity.Session, productID string, quantity int64) error {
	if session.Anonymous() {
		return shared.ErrLoginRequired
	}
	if strings.TrimSpace(productID) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product id is required")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	if err := s.gateway.AddLine(ctx, productID, session.User.ID, quantity); err != nil {
		return err
	}
	s.evict(ctx)
	return nil
}

// Checkout places a cash-on-delivery order for the current cart
func (s *Service) Checkout(ctx context.Context, details order.ShippingDetails) (*order.Confirmation, error) {
	details = details.Normalized()
	if err := details.Validate(); err != nil {
		return nil, err
	}

	conf, err := s.gateway.Checkout(ctx, details)
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	if conf.Order != nil {
		s.logger.Info("order placed", zap.String("order_id", conf.Order.ID))
	}
	return conf, nil
}

// MyOrders lists the caller's orders
func (s *Service) MyOrders(ctx context.Context) ([]order.Order, error) {
	return s.gateway.MyOrders(ctx)
}

// GetOrder returns one of the caller's orders
func (s *Service) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order id is required")
	}
	return s.gateway.GetOrder(ctx, orderID)
}

// evict drops the cached cart so the next view reloads the server state
func (s *Service) evict(ctx context.Context) {
	if s.carts == nil {
		return
	}
	if cred := identity.CredentialFromContext(ctx); !cred.Empty() {
		s.carts.Evict(cred)
	}
}
