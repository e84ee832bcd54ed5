// Package seller lets sellers manage their medicines and fulfil orders.
package seller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/catalog"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/domain/shared"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
)

// Gateway is the remote seller API
type Gateway interface {
	CreateMedicine(ctx context.Context, in catalog.MedicineInput) (*catalog.Medicine, error)
	UpdateMedicine(ctx context.Context, id string, in catalog.MedicineInput) (*catalog.Medicine, error)
	DeleteMedicine(ctx context.Context, id string) error
	MyMedicines(ctx context.Context) ([]catalog.Medicine, error)
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error)
	SellerOrders(ctx context.Context) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
}

// CatalogCache is invalidated after the catalog changes
type CatalogCache interface {
	Invalidate(ctx context.Context)
	InvalidateCategories(ctx context.Context)
}

// Service handles seller operations
type Service struct {
	gateway Gateway
	catalog CatalogCache
	logger  *zap.Logger
}

// NewService creates a seller service. cache may be nil.
func NewService(gateway Gateway, cache CatalogCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, catalog: cache, logger: logger}
}

// CreateMedicine lists a new medicine
func (s *Service) CreateMedicine(ctx context.Context, in catalog.MedicineInput) (*catalog.Medicine, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m, err := s.gateway.CreateMedicine(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("medicine created", zap.String("medicine_id", m.ID))
	return m, nil
}

// UpdateMedicine replaces a medicine's details
func (s *Service) UpdateMedicine(ctx context.Context, id string, in catalog.MedicineInput) (*catalog.Medicine, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m, err := s.gateway.UpdateMedicine(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return m, nil
}

// DeleteMedicine removes a medicine
func (s *Service) DeleteMedicine(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.gateway.DeleteMedicine(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("medicine deleted", zap.String("medicine_id", id))
	return nil
}

// MyMedicines lists the seller's own medicines
func (s *Service) MyMedicines(ctx context.Context) ([]catalog.Medicine, error) {
	return s.gateway.MyMedicines(ctx)
}

// CreateCategory adds a category
func (s *Service) CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := s.gateway.CreateCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.catalog != nil {
		s.catalog.InvalidateCategories(ctx)
	}
	return c, nil
}

// Orders lists orders containing the seller's medicines
func (s *Service) Orders(ctx context.Context) ([]order.Order, error) {
	return s.gateway.SellerOrders(ctx)
}

// UpdateOrderStatus moves an order forward. Only seller-settable statuses
// are sent to the API.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	if err := requireID(orderID); err != nil {
		return nil, err
	}
	status = order.Status(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.IsSellerSettable() {
		return nil, medistore.ErrStatusNotSettable
	}
	o, err := s.gateway.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)
	return o, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Id is required")
	}
	return nil
}
