package handlers

import (
	"context"

	"golang-storefront-client/internal/models"
	"golang-storefront-client/internal/services"
)

// CartServiceInterface defines the cart manager operations the cart
// handlers need.
type CartServiceInterface interface {
	FetchCart(ctx context.Context, userID string) (*models.Cart, error)
	AddLine(ctx context.Context, req *services.AddLineRequest) (*models.Cart, error)
	SetQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.Cart, error)
	RemoveLine(ctx context.Context, userID string, productID int64) (*models.Cart, error)
	Clear(ctx context.Context, userID string) (*models.Cart, error)
	Snapshot(userID string) (services.CartState, models.Cart, error)
}
