package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Widget","price":10}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Widget", products[0].Title)
}

func TestServerErrorIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Failed to fetch products."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.ListProducts(context.Background())

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Equal(t, "Failed to fetch products.", upstream.Message)
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestConnectionFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens on the address anymore

	client := NewClient(server.URL, time.Second)
	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestCanceledContextIsNotUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestBearerTokenForwarded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"userId":"u1","items":[],"totalQuantity":0,"totalPrice":0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	ctx := WithToken(context.Background(), "session-token")
	cart, err := client.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
}

func TestCartMutationUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Item added to cart successfully.","cart":{"userId":"u1","items":[{"productId":1,"title":"Widget","price":10,"quantity":1,"total":10}],"totalQuantity":1,"totalPrice":10}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	cart, err := client.AddCartItem(context.Background(), &AddCartItemRequest{
		UserID:    "u1",
		ProductID: 1,
		Title:     "Widget",
		Price:     10,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalQuantity)
	assert.Equal(t, 10.0, cart.TotalPrice)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(1), cart.Items[0].ProductID)
}

func TestUpstreamMessageFallsBackToRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.GetBlog(context.Background(), "b1")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "bad gateway", upstream.Message)
}

func TestFileURL(t *testing.T) {
	client := NewClient("http://localhost:8080", time.Second)
	assert.Equal(t, "http://localhost:8080/api/file/cover.png", client.FileURL("cover.png"))
}
