package order

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medistore/storefront/internal/domain/identity"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/domain/shared"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) AddLine(ctx context.Context, productID, userID string, quantity int64) error {
	args := m.Called(ctx, productID, userID, quantity)
	return args.Error(0)
}

func (m *MockGateway) Checkout(ctx context.Context, details order.ShippingDetails) (*order.Confirmation, error) {
	args := m.Called(ctx, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Confirmation), args.Error(1)
}

func (m *MockGateway) MyOrders(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockGateway) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type evictRecorder struct {
	evicted []identity.Credential
}

func (e *evictRecorder) Evict(cred identity.Credential) {
	e.evicted = append(e.evicted, cred)
}

func validDetails() order.ShippingDetails {
	return order.ShippingDetails{
		Name:         " Rafi Ahmed ",
		Phone:        "01711000000",
		AddressLine1: "House 12, Road 5",
		City:         "Dhaka",
	}
}

func TestService_AddToCart(t *testing.T) {
	cred := identity.Credential("session=abc")
	ctx := identity.WithCredential(context.Background(), cred)
	session := &identity.Session{User: identity.User{ID: "u1"}}

	t.Run("anonymous session refused before any call", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw, nil, nil)

		err := svc.AddToCart(ctx, nil, "m1", 1)
		assert.ErrorIs(t, err, shared.ErrLoginRequired)
		gw.AssertNotCalled(t, "AddLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := NewService(new(MockGateway), nil, nil)
		assert.Error(t, svc.AddToCart(ctx, session, "", 1))
		assert.Error(t, svc.AddToCart(ctx, session, "m1", 0))
	})

	t.Run("adds and evicts the cached cart", func(t *testing.T) {
		gw := new(MockGateway)
		carts := &evictRecorder{}
		gw.On("AddLine", ctx, "m1", "u1", int64(2)).Return(nil).Once()

		require.NoError(t, NewService(gw, carts, nil).AddToCart(ctx, session, "m1", 2))
		assert.Equal(t, []identity.Credential{cred}, carts.evicted)
		gw.AssertExpectations(t)
	})

	t.Run("remote failure keeps the cart", func(t *testing.T) {
		gw := new(MockGateway)
		carts := &evictRecorder{}
		gw.On("AddLine", ctx, "m1", "u1", int64(1)).Return(&medistore.Failure{Kind: medistore.KindRemote, Status: 400, Message: "Out of stock"}).Once()

		err := NewService(gw, carts, nil).AddToCart(ctx, session, "m1", 1)
		f, ok := medistore.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, "Out of stock", f.Message)
		assert.Empty(t, carts.evicted)
	})
}

func TestService_Checkout(t *testing.T) {
	cred := identity.Credential("session=abc")
	ctx := identity.WithCredential(context.Background(), cred)

	t.Run("invalid details never reach the API", func(t *testing.T) {
		gw := new(MockGateway)
		details := validDetails()
		details.City = ""

		_, err := NewService(gw, nil, nil).Checkout(ctx, details)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "shippingCity", verrs[0].Field())
		gw.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
	})

	t.Run("normalizes, places the order and evicts the cart", func(t *testing.T) {
		gw := new(MockGateway)
		carts := &evictRecorder{}
		want := validDetails().Normalized()
		gw.On("Checkout", ctx, want).Return(&order.Confirmation{Order: &order.Order{ID: "o1"}, Message: "Order placed successfully"}, nil).Once()

		conf, err := NewService(gw, carts, nil).Checkout(ctx, validDetails())
		require.NoError(t, err)
		assert.Equal(t, "o1", conf.Order.ID)
		assert.Equal(t, "Rafi Ahmed", want.Name)
		assert.Equal(t, order.DefaultCountry, want.Country)
		assert.Equal(t, []identity.Credential{cred}, carts.evicted)
	})
}

func TestService_Orders(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	svc := NewService(gw, nil, nil)
	gw.On("MyOrders", ctx).Return([]order.Order{{ID: "o1"}}, nil).Once()
	gw.On("GetOrder", ctx, "o1").Return(&order.Order{ID: "o1", Status: "PLACED"}, nil).Once()

	orders, err := svc.MyOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	o, err := svc.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, order.Status("PLACED"), o.Status)

	_, err = svc.GetOrder(ctx, " ")
	assert.Error(t, err)
	gw.AssertExpectations(t)
}
