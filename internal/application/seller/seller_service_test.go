package seller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medistore/storefront/internal/domain/catalog"
	"github.com/medistore/storefront/internal/domain/order"
	"github.com/medistore/storefront/internal/infrastructure/medistore"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateMedicine(ctx context.Context, in catalog.MedicineInput) (*catalog.Medicine, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Medicine), args.Error(1)
}

func (m *MockGateway) UpdateMedicine(ctx context.Context, id string, in catalog.MedicineInput) (*catalog.Medicine, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Medicine), args.Error(1)
}

func (m *MockGateway) DeleteMedicine(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateway) MyMedicines(ctx context.Context) ([]catalog.Medicine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Medicine), args.Error(1)
}

func (m *MockGateway) CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockGateway) SellerOrders(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockGateway) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type cacheRecorder struct {
	medicines  int
	categories int
}

func (c *cacheRecorder) Invalidate(context.Context)           { c.medicines++ }
func (c *cacheRecorder) InvalidateCategories(context.Context) { c.categories++ }

func validInput() catalog.MedicineInput {
	return catalog.MedicineInput{CategoryID: "c1", Name: "Napa Extra", Price: "12.50", Stock: 10}
}

func TestService_Medicines(t *testing.T) {
	ctx := context.Background()

	t.Run("create validates then invalidates the catalog", func(t *testing.T) {
		gw := new(MockGateway)
		cache := &cacheRecorder{}
		gw.On("CreateMedicine", ctx, validInput()).Return(&catalog.Medicine{ID: "m1"}, nil).Once()

		m, err := NewService(gw, cache, nil).CreateMedicine(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "m1", m.ID)
		assert.Equal(t, 1, cache.medicines)
	})

	t.Run("invalid input never reaches the API", func(t *testing.T) {
		gw := new(MockGateway)
		in := validInput()
		in.Price = "-1"

		_, err := NewService(gw, nil, nil).CreateMedicine(ctx, in)
		assert.ErrorIs(t, err, catalog.ErrInvalidPrice)
		_, err = NewService(gw, nil, nil).UpdateMedicine(ctx, "", validInput())
		assert.Error(t, err)
		gw.AssertExpectations(t)
	})

	t.Run("update and delete", func(t *testing.T) {
		gw := new(MockGateway)
		cache := &cacheRecorder{}
		svc := NewService(gw, cache, nil)
		gw.On("UpdateMedicine", ctx, "m1", validInput()).Return(&catalog.Medicine{ID: "m1"}, nil).Once()
		gw.On("DeleteMedicine", ctx, "m1").Return(nil).Once()

		_, err := svc.UpdateMedicine(ctx, "m1", validInput())
		require.NoError(t, err)
		require.NoError(t, svc.DeleteMedicine(ctx, "m1"))
		assert.Equal(t, 2, cache.medicines)
		gw.AssertExpectations(t)
	})

	t.Run("failed delete keeps the cache", func(t *testing.T) {
		gw := new(MockGateway)
		cache := &cacheRecorder{}
		gw.On("DeleteMedicine", ctx, "m1").Return(&medistore.Failure{Kind: medistore.KindRemote, Status: 403, Message: "Forbidden"}).Once()

		assert.Error(t, NewService(gw, cache, nil).DeleteMedicine(ctx, "m1"))
		assert.Zero(t, cache.medicines)
	})
}

func TestService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	cache := &cacheRecorder{}
	in := catalog.CategoryInput{Name: "Vitamins"}
	gw.On("CreateCategory", ctx, in).Return(&catalog.Category{ID: "c9", Name: "Vitamins"}, nil).Once()

	c, err := NewService(gw, cache, nil).CreateCategory(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "c9", c.ID)
	assert.Equal(t, 1, cache.categories)
}

func TestService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("status outside the seller set", func(t *testing.T) {
		gw := new(MockGateway)
		_, err := NewService(gw, nil, nil).UpdateOrderStatus(ctx, "o1", order.StatusPlaced)
		assert.ErrorIs(t, err, medistore.ErrStatusNotSettable)
		gw.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("normalizes case", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("UpdateOrderStatus", ctx, "o1", order.StatusShipped).Return(&order.Order{ID: "o1", Status: order.StatusShipped}, nil).Once()

		o, err := NewService(gw, nil, nil).UpdateOrderStatus(ctx, "o1", "shipped")
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, o.Status)
	})
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()
	gw := new(MockGateway)
	svc := NewService(gw, nil, nil)
	gw.On("MyMedicines", ctx).Return([]catalog.Medicine{{ID: "m1"}}, nil).Once()
	gw.On("SellerOrders", ctx).Return([]order.Order{{ID: "o1"}, {ID: "o2"}}, nil).Once()

	meds, err := svc.MyMedicines(ctx)
	require.NoError(t, err)
	assert.Len(t, meds, 1)

	orders, err := svc.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
