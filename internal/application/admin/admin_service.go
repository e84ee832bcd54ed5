// Package admin covers the administrator dashboard: users, sellers and
// platform-wide orders.
package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/domain/shared"
)

// ErrSelfBan is returned when an admin tries to ban their own account
var ErrSelfBan = shared.NewDomainError("INVALID_STATE", "You cannot ban your own account")

// Gateway is the remote admin API
type Gateway interface {
	ListUsers(ctx context.Context) ([]identity.User, error)
	Stats(ctx context.Context) (*identity.AdminStats, error)
	AllOrders(ctx context.Context) ([]order.Order, error)
	UpdateUserBanStatus(ctx context.Context, userID string, banned bool) error
	ApproveSeller(ctx context.Context, userID string) error
}

// Service handles admin operations
type Service struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates an admin service
func NewService(gateway Gateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, logger: logger}
}

// Users lists every account
func (s *Service) Users(ctx context.Context) ([]identity.User, error) {
	return s.gateway.ListUsers(ctx)
}

// Stats returns the dashboard counters
func (s *Service) Stats(ctx context.Context) (*identity.AdminStats, error) {
	return s.gateway.Stats(ctx)
}

// Orders lists every order on the platform
func (s *Service) Orders(ctx context.Context) ([]order.Order, error) {
	return s.gateway.AllOrders(ctx)
}

// SetBanned bans or unbans a user
func (s *Service) SetBanned(ctx context.Context, userID string, banned bool) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return shared.NewDomainError("INVALID_INPUT", "User id is required")
	}
	if caller := identity.SessionFromContext(ctx); banned && !caller.Anonymous() && caller.User.ID == userID {
		return ErrSelfBan
	}
	if err := s.gateway.UpdateUserBanStatus(ctx, userID, banned); err != nil {
		return err
	}
	s.logger.Info("user ban status changed", zap.String("user_id", userID), zap.Bool("banned", banned))
	return nil
}

// ApproveSeller lets a seller start listing medicines
func (s *Service) ApproveSeller(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return shared.NewDomainError("INVALID_INPUT", "User id is required")
	}
	if err := s.gateway.ApproveSeller(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("seller approved", zap.String("user_id", userID))
	return nil
}
