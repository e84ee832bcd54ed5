// Package identity resolves the caller's session and manages their profile.
package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/identity"
)

// Gateway is the remote auth and profile API
type Gateway interface {
	GetSession(ctx context.Context) (*identity.Session, error)
	GetProfile(ctx context.Context) (*identity.Profile, error)
	UpdateProfile(ctx context.Context, in identity.ProfileUpdate) (*identity.Profile, error)
}

// Service resolves sessions and edits profiles
type Service struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewService creates an identity service
func NewService(gateway Gateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, logger: logger}
}

// Resolve returns the session behind cred, or nil when the caller is anonymous
func (s *Service) Resolve(ctx context.Context, cred identity.Credential) (*identity.Session, error) {
	if cred.Empty() {
		return nil, nil
	}
	session, err := s.gateway.GetSession(identity.WithCredential(ctx, cred))
	if err != nil {
		return nil, err
	}
	if session.Anonymous() {
		return nil, nil
	}
	return session, nil
}

// Profile returns the caller's profile
func (s *Service) Profile(ctx context.Context) (*identity.Profile, error) {
	return s.gateway.GetProfile(ctx)
}

// UpdateProfile validates and saves the caller's editable profile fields
func (s *Service) UpdateProfile(ctx context.Context, in identity.ProfileUpdate) (*identity.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.gateway.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("profile updated", zap.String("user_id", p.ID))
	return p, nil
}
