package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/infrastructure/logger"
	"github.com/medistore/storefront/internal/interfaces/http/dto"
)

// Gin context keys set by the session middleware
const (
	CredentialKey = "credential"
	SessionKey    = "session"
)

// SessionResolver resolves a credential to a session. A nil session means
// the caller is anonymous.
type SessionResolver interface {
	Resolve(ctx context.Context, cred identity.Credential) (*identity.Session, error)
}

// Credential copies the browser's Cookie header into the request context so
// remote calls are made on the caller's behalf.
func Credential() gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := identity.Credential(c.GetHeader("Cookie"))
		if !cred.Empty() {
			c.Set(CredentialKey, cred)
			c.Request = c.Request.WithContext(identity.WithCredential(c.Request.Context(), cred))
		}
		c.Next()
	}
}

// LoadSession resolves the caller's session once per request. A resolver
// error leaves the caller anonymous.
func LoadSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := GetCredential(c)
		if cred.Empty() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		sess, err := resolver.Resolve(ctx, cred)
		if err != nil {
			logger.FromContext(ctx).Warn("Session lookup failed, continuing anonymously", zap.Error(err))
			c.Next()
			return
		}
		if !sess.Anonymous() {
			c.Set(SessionKey, sess)
			ctx = identity.WithSession(ctx, sess)
			ctx = logger.WithSessionUser(ctx, sess.User.ID, string(sess.User.Role))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequireSession aborts with 401 when no signed-in session is present
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c).Anonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Please login first", getRequestID(c)))
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 401 for anonymous callers and 403 for other roles
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess.Anonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Please login first", getRequestID(c)))
			return
		}
		for _, r := range roles {
			if sess.User.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden, "You do not have access to this resource", getRequestID(c)))
	}
}

// GetCredential returns the caller's credential, if any
func GetCredential(c *gin.Context) identity.Credential {
	if v, ok := c.Get(CredentialKey); ok {
		if cred, ok := v.(identity.Credential); ok {
			return cred
		}
	}
	return ""
}

// GetSession returns the caller's session, or nil when anonymous
func GetSession(c *gin.Context) *identity.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*identity.Session); ok {
			return sess
		}
	}
	return nil
}
