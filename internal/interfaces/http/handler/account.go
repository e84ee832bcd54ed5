package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	identityapp "github.com/medistore/storefront/internal/application/identity"
	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/interfaces/http/middleware"
)

// ProfileService reads and edits the caller's profile
type ProfileService interface {
	Profile(ctx context.Context) (*identity.Profile, error)
	UpdateProfile(ctx context.Context, in identity.ProfileUpdate) (*identity.Profile, error)
}

// AccountHandler serves the session, the profile and page guard decisions
type AccountHandler struct {
	BaseHandler
	profiles ProfileService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(profiles ProfileService) *AccountHandler {
	return &AccountHandler{profiles: profiles}
}

// Session returns the caller's session; an anonymous caller gets no data
// GET /session
func (h *AccountHandler) Session(c *gin.Context) {
	if sess := middleware.GetSession(c); !sess.Anonymous() {
		h.Success(c, sess)
		return
	}
	h.Success(c, nil)
}

// Guard decides whether the caller may open a page of the shop
// GET /guard?path=/seller-dashboard/orders
func (h *AccountHandler) Guard(c *gin.Context) {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		h.BadRequest(c, "path is required")
		return
	}
	h.Success(c, identityapp.Guard(path, middleware.GetSession(c)))
}

// GetProfile returns the caller's profile
// GET /profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Profile(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// UpdateProfile saves the caller's editable profile fields
// PATCH /profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var in identity.ProfileUpdate
	if !h.bindJSON(c, &in) {
		return
	}

	p, err := h.profiles.UpdateProfile(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
