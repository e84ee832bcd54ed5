package medistore

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medistore/storefront/internal/domain/identity"
)

// GetProfile reads the caller's profile
func (c *Client) GetProfile(ctx context.Context) (*identity.Profile, error) {
	var p identity.Profile
	if _, err := c.do(ctx, call{
		op:     "profile.get",
		method: http.MethodGet,
		url:    c.api("/api/profile/me"),
	}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the caller's name, email and phone
func (c *Client) UpdateProfile(ctx context.Context, in identity.ProfileUpdate) (*identity.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var p identity.Profile
	if _, err := c.do(ctx, call{
		op:     "profile.update",
		method: http.MethodPatch,
		url:    c.api("/api/profile/me"),
		body:   in,
	}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetSession resolves the credential in ctx against the auth service. The
// auth service answers with a bare session object, or null when anonymous;
// it does not use the API envelope.
func (c *Client) GetSession(ctx context.Context) (*identity.Session, error) {
	if identity.CredentialFromContext(ctx).Empty() {
		return nil, nil
	}
	var raw json.RawMessage
	err := c.doRaw(ctx, call{
		op:     "auth.get_session",
		method: http.MethodGet,
		url:    c.config.AuthURL + "/get-session",
	}, &raw)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var s identity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &Failure{Kind: KindDecode, Operation: "auth.get_session", Status: http.StatusOK, Message: "Malformed response from server", Err: err}
	}
	if s.Anonymous() {
		return nil, nil
	}
	s.User.Role = identity.ParseRole(string(s.User.Role))
	return &s, nil
}

var _ identity.SessionProvider = (*Client)(nil)
