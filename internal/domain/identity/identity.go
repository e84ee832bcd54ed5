// Package identity models the authenticated shopper, seller or admin and the
// credential forwarded to the remote API on their behalf.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/medistore/storefront/internal/domain/shared"
)

// Role is the account role reported by the auth service
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSeller   Role = "SELLER"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole normalizes a role string. Unknown roles fall back to customer.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSeller:
		return RoleSeller
	default:
		return RoleCustomer
	}
}

// Home is the landing path for the role
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleSeller:
		return "/seller-dashboard"
	default:
		return "/profile"
	}
}

// User is an account as reported by the remote API
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     *string   `json:"phone"`
	Image     *string   `json:"image"`
	IsBanned  bool      `json:"isBanned"`
	Approved  *bool     `json:"isApproved,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the resolved identity behind a credential
type Session struct {
	User User `json:"user"`
}

// Anonymous reports whether the session carries no user
func (s *Session) Anonymous() bool {
	return s == nil || s.User.ID == ""
}

// Profile is the caller's own profile
type Profile struct {
	User
	Address *string `json:"address"`
}

// ProfileUpdate is the editable subset of a profile
type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=7"`
}

var validate = shared.NewValidator()

// Validate checks the update payload
func (p ProfileUpdate) Validate() error {
	return validate.Struct(p)
}

// AdminStats is the admin dashboard summary
type AdminStats struct {
	TotalUsers     int64  `json:"totalUsers"`
	TotalSellers   int64  `json:"totalSellers"`
	TotalCustomers int64  `json:"totalCustomers"`
	TotalMedicines int64  `json:"totalMedicines"`
	TotalOrders    int64  `json:"totalOrders"`
	TotalRevenue   string `json:"totalRevenue"`
}

// Credential is the opaque cookie header presented by the browser
type Credential string

// Empty reports whether no credential was presented
func (c Credential) Empty() bool {
	return strings.TrimSpace(string(c)) == ""
}

type credentialKey struct{}

type sessionKey struct{}

// WithCredential stores the credential in ctx
func WithCredential(ctx context.Context, c Credential) context.Context {
	return context.WithValue(ctx, credentialKey{}, c)
}

// CredentialFromContext returns the credential stored in ctx, if any
func CredentialFromContext(ctx context.Context) Credential {
	if c, ok := ctx.Value(credentialKey{}).(Credential); ok {
		return c
	}
	return ""
}

// WithSession stores the resolved session in ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored in ctx, or nil
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// SessionProvider resolves a credential to a session. A nil session with a
// nil error means the credential is anonymous.
type SessionProvider interface {
	GetSession(ctx context.Context) (*Session, error)
}
