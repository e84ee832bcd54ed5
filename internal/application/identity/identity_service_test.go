package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medistore/storefront/internal/domain/identity"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetSession(ctx context.Context) (*identity.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Session), args.Error(1)
}

func (m *MockGateway) GetProfile(ctx context.Context) (*identity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockGateway) UpdateProfile(ctx context.Context, in identity.ProfileUpdate) (*identity.Profile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func hasCredential(cred identity.Credential) any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		return identity.CredentialFromContext(ctx) == cred
	})
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("no credential is anonymous without a call", func(t *testing.T) {
		gw := new(MockGateway)
		s, err := NewService(gw, nil).Resolve(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, s)
		gw.AssertNotCalled(t, "GetSession", mock.Anything)
	})

	t.Run("forwards the credential", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetSession", hasCredential("session=abc")).
			Return(&identity.Session{User: identity.User{ID: "u1", Role: identity.RoleSeller}}, nil).Once()

		s, err := NewService(gw, nil).Resolve(ctx, "session=abc")
		require.NoError(t, err)
		assert.Equal(t, "u1", s.User.ID)
		gw.AssertExpectations(t)
	})

	t.Run("session without user is anonymous", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("GetSession", mock.Anything).Return(&identity.Session{}, nil).Once()

		s, err := NewService(gw, nil).Resolve(ctx, "session=stale")
		require.NoError(t, err)
		assert.Nil(t, s)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid update never reaches the API", func(t *testing.T) {
		gw := new(MockGateway)
		_, err := NewService(gw, nil).UpdateProfile(ctx, identity.ProfileUpdate{Name: "R", Email: "x"})
		require.Error(t, err)
		gw.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("saves", func(t *testing.T) {
		gw := new(MockGateway)
		in := identity.ProfileUpdate{Name: "Rafi", Email: "rafi@example.com", Phone: "01711000000"}
		gw.On("UpdateProfile", ctx, in).Return(&identity.Profile{User: identity.User{ID: "u1", Name: "Rafi"}}, nil).Once()

		p, err := NewService(gw, nil).UpdateProfile(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "Rafi", p.Name)
	})
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("GetProfile", ctx).Return(&identity.Profile{User: identity.User{ID: "u1"}}, nil).Once()

	p, err := NewService(gw, nil).Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
}
