package services

import (
	"context"
	"net/http"
	"testing"

	"golang-storefront-client/internal/gateway"
	"golang-storefront-client/internal/models"
	"golang-storefront-client/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartGateway struct{ mock.Mock }

func (m *MockCartGateway) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartGateway) AddCartItem(ctx context.Context, req *gateway.AddCartItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartGateway) UpdateCartItemQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartGateway) RemoveCartItem(ctx context.Context, userID string, productID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartGateway) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func widgetLine(quantity int) models.CartItem {
	return models.CartItem{
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  quantity,
		Total:     10 * float64(quantity),
	}
}

func TestFetchCartEmptyDefault(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	// The remote service answers an owner without a cart with an empty
	// aggregate, not an error.
	gw.On("GetCart", ctx, "u1").Return(&models.Cart{}, nil).Once()

	cart, err := svc.FetchCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)

	state, _, _ := svc.Snapshot("u1")
	assert.Equal(t, CartStateLoaded, state)
}

func TestFetchCartNotFoundIsEmptyDefault(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	gw.On("GetCart", ctx, "u1").Return(nil, &gateway.UpstreamError{
		StatusCode: http.StatusNotFound,
		Message:    "Cart not found.",
	}).Once()

	cart, err := svc.FetchCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
}

func TestAddLineAdoptsServerAggregate(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	echoed := &models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(1)},
		TotalQuantity: 1,
		TotalPrice:    10,
	}
	gw.On("AddCartItem", ctx, &gateway.AddCartItemRequest{
		UserID:    "u1",
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  1,
	}).Return(echoed, nil).Once()

	cart, err := svc.AddLine(ctx, &AddLineRequest{
		UserID:    "u1",
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, echoed, cart)

	state, snapshot, snapErr := svc.Snapshot("u1")
	assert.Equal(t, CartStateLoaded, state)
	assert.NoError(t, snapErr)
	assert.Equal(t, *echoed, snapshot)
}

func TestAddLineMergesWithExistingLine(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	gw.On("GetCart", ctx, "u1").Return(&models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(2)},
		TotalQuantity: 2,
		TotalPrice:    20,
	}, nil).Once()
	_, err := svc.FetchCart(ctx, "u1")
	require.NoError(t, err)

	// Re-adding the same product becomes a quantity update, not a second
	// line.
	gw.On("UpdateCartItemQuantity", ctx, "u1", int64(1), 5).Return(&models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(5)},
		TotalQuantity: 5,
		TotalPrice:    50,
	}, nil).Once()

	cart, err := svc.AddLine(ctx, &AddLineRequest{
		UserID:    "u1",
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  3,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalQuantity)

	gw.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything)
	gw.AssertExpectations(t)
}

func TestAddLineDoesNotMergeAcrossOwners(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	// u1 already holds product 1 locally.
	gw.On("GetCart", ctx, "u1").Return(&models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(2)},
		TotalQuantity: 2,
		TotalPrice:    20,
	}, nil).Once()
	_, err := svc.FetchCart(ctx, "u1")
	require.NoError(t, err)

	// u2 adding the same product gets a fresh add, never a quantity
	// update derived from u1's line.
	u2Cart := &models.Cart{
		UserID:        "u2",
		Items:         []models.CartItem{widgetLine(1)},
		TotalQuantity: 1,
		TotalPrice:    10,
	}
	gw.On("AddCartItem", ctx, &gateway.AddCartItemRequest{
		UserID:    "u2",
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  1,
	}).Return(u2Cart, nil).Once()

	cart, err := svc.AddLine(ctx, &AddLineRequest{
		UserID:    "u2",
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, u2Cart, cart)

	gw.AssertNotCalled(t, "UpdateCartItemQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Each owner keeps their own projection.
	state, snapshot, _ := svc.Snapshot("u1")
	assert.Equal(t, CartStateLoaded, state)
	assert.Equal(t, 2, snapshot.TotalQuantity)

	state, snapshot, _ = svc.Snapshot("u2")
	assert.Equal(t, CartStateLoaded, state)
	assert.Equal(t, 1, snapshot.TotalQuantity)
}

func TestSnapshotUnknownOwnerIsEmpty(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())

	state, snapshot, lastErr := svc.Snapshot("nobody")
	assert.Equal(t, CartStateEmpty, state)
	assert.Equal(t, "nobody", snapshot.UserID)
	assert.Empty(t, snapshot.Items)
	assert.NoError(t, lastErr)
}

func TestSetQuantityZeroBecomesRemoval(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	gw.On("GetCart", ctx, "u1").Return(&models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(2), {ProductID: 2, Title: "Gadget", Price: 5, Quantity: 1, Total: 5}},
		TotalQuantity: 3,
		TotalPrice:    25,
	}, nil).Once()
	_, err := svc.FetchCart(ctx, "u1")
	require.NoError(t, err)

	afterRemoval := &models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{{ProductID: 2, Title: "Gadget", Price: 5, Quantity: 1, Total: 5}},
		TotalQuantity: 1,
		TotalPrice:    5,
	}
	gw.On("RemoveCartItem", ctx, "u1", int64(1)).Return(afterRemoval, nil).Twice()

	cart, err := svc.SetQuantity(ctx, "u1", 1, 0)
	require.NoError(t, err)
	assert.Nil(t, cart.FindItem(1))
	assert.Equal(t, 1, cart.TotalQuantity)
	assert.Equal(t, 5.0, cart.TotalPrice)

	// Explicit removal takes the same path and produces the same
	// aggregate.
	removed, err := svc.RemoveLine(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, cart, removed)

	gw.AssertNotCalled(t, "UpdateCartItemQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetQuantityUpdatesExactValue(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	gw.On("UpdateCartItemQuantity", ctx, "u1", int64(1), 7).Return(&models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(7)},
		TotalQuantity: 7,
		TotalPrice:    70,
	}, nil).Once()

	cart, err := svc.SetQuantity(ctx, "u1", 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestClearAdoptsEmptyAggregate(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	gw.On("ClearCart", ctx, "u1").Return(&models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{},
		TotalQuantity: 0,
		TotalPrice:    0,
	}, nil).Once()

	cart, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestMutationFailureKeepsPriorAggregate(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	loaded := &models.Cart{
		UserID:        "u1",
		Items:         []models.CartItem{widgetLine(2)},
		TotalQuantity: 2,
		TotalPrice:    20,
	}
	gw.On("GetCart", ctx, "u1").Return(loaded, nil).Once()
	_, err := svc.FetchCart(ctx, "u1")
	require.NoError(t, err)

	upstreamErr := &gateway.UpstreamError{StatusCode: http.StatusConflict, Message: "Insufficient stock."}
	gw.On("UpdateCartItemQuantity", ctx, "u1", int64(1), 99).Return(nil, upstreamErr).Once()

	_, err = svc.SetQuantity(ctx, "u1", 1, 99)
	var upstream *gateway.UpstreamError
	require.ErrorAs(t, err, &upstream)

	state, snapshot, lastErr := svc.Snapshot("u1")
	assert.Equal(t, CartStateError, state)
	assert.Equal(t, *loaded, snapshot)
	assert.Equal(t, err, lastErr)
}

func TestTransportFailureSurfacedForCartOps(t *testing.T) {
	// Cart mutations have no offline fallback: unreachable means the
	// error reaches the caller.
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	gw.On("GetCart", ctx, "u1").Return(nil, errUnreachable()).Once()

	_, err := svc.FetchCart(ctx, "u1")
	assert.ErrorIs(t, err, gateway.ErrUnreachable)
}

func TestValidationGuards(t *testing.T) {
	gw := new(MockCartGateway)
	svc := NewCartService(gw, logger.NewNop())
	ctx := context.Background()

	var validation *ValidationError

	_, err := svc.FetchCart(ctx, "")
	require.ErrorAs(t, err, &validation)

	_, err = svc.AddLine(ctx, &AddLineRequest{UserID: "u1", ProductID: 1, Title: "Widget", Price: 10, Quantity: 0})
	require.ErrorAs(t, err, &validation)

	_, err = svc.SetQuantity(ctx, "", 1, 2)
	require.ErrorAs(t, err, &validation)

	_, err = svc.RemoveLine(ctx, "", 1)
	require.ErrorAs(t, err, &validation)

	_, err = svc.Clear(ctx, "")
	require.ErrorAs(t, err, &validation)

	// Guard failures never reach the remote service.
	gw.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything)
}
