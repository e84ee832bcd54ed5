package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/domain/order"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListUsers(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockGateway) Stats(ctx context.Context) (*identity.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminStats), args.Error(1)
}

func (m *MockGateway) AllOrders(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockGateway) UpdateUserBanStatus(ctx context.Context, userID string, banned bool) error {
	args := m.Called(ctx, userID, banned)
	return args.Error(0)
}

func (m *MockGateway) ApproveSeller(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestService_SetBanned(t *testing.T) {
	admin := &identity.Session{User: identity.User{ID: "admin-1", Role: identity.RoleAdmin}}
	ctx := identity.WithSession(context.Background(), admin)

	t.Run("bans another user", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("UpdateUserBanStatus", ctx, "u2", true).Return(nil).Once()

		require.NoError(t, NewService(gw, nil).SetBanned(ctx, " u2 ", true))
		gw.AssertExpectations(t)
	})

	t.Run("refuses to ban self", func(t *testing.T) {
		gw := new(MockGateway)
		err := NewService(gw, nil).SetBanned(ctx, "admin-1", true)
		assert.ErrorIs(t, err, ErrSelfBan)
		gw.AssertNotCalled(t, "UpdateUserBanStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty id", func(t *testing.T) {
		assert.Error(t, NewService(new(MockGateway), nil).SetBanned(ctx, "", false))
	})
}

func TestService_ApproveSeller(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	gw.On("ApproveSeller", ctx, "s1").Return(nil).Once()
	svc := NewService(gw, nil)

	require.NoError(t, svc.ApproveSeller(ctx, "s1"))
	assert.Error(t, svc.ApproveSeller(ctx, " "))
	gw.AssertExpectations(t)
}

func TestService_Reads(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	svc := NewService(gw, nil)
	gw.On("ListUsers", ctx).Return([]identity.User{{ID: "u1"}}, nil).Once()
	gw.On("Stats", ctx).Return(&identity.AdminStats{TotalUsers: 3}, nil).Once()
	gw.On("AllOrders", ctx).Return([]order.Order{}, nil).Once()

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)

	orders, err := svc.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	gw.AssertExpectations(t)
}
