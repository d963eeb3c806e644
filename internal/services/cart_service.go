package services

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"golang-storefront-client/internal/gateway"
	"golang-storefront-client/internal/models"

	"go.uber.org/zap"
)

// CartGateway is the remote cart surface the manager depends on. Every
// mutation returns the fresh server-computed aggregate.
type CartGateway interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddCartItem(ctx context.Context, req *gateway.AddCartItemRequest) (*models.Cart, error)
	UpdateCartItemQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, userID string, productID int64) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) (*models.Cart, error)
}

// CartState is the lifecycle of the local projection. CartStateError keeps
// the last adopted aggregate around for display.
type CartState string

const (
	CartStateEmpty  CartState = "empty"
	CartStateLoaded CartState = "loaded"
	CartStateError  CartState = "error"
)

type AddLineRequest struct {
	UserID               string  `json:"userId" binding:"required"`
	ProductID            int64   `json:"productId" binding:"required"`
	Title                string  `json:"title" binding:"required"`
	Price                float64 `json:"price" binding:"gte=0"`
	Quantity             int     `json:"quantity" binding:"required,gte=1"`
	Thumbnail            string  `json:"thumbnail,omitempty"`
	CarbonFootprintScore float64 `json:"carbonFootprintScore,omitempty"`
}

// cartProjection is one owner's local view of their aggregate.
type cartProjection struct {
	state   CartState
	current models.Cart
	lastErr error
}

// CartService mediates all cart mutations through the remote cart
// service, keeping one projection per owner. The server's response is
// always adopted wholesale as that owner's new local truth; no totals are
// computed client-side. Operations are not serialized: when mutations for
// one owner overlap, whichever response arrives last wins.
type CartService struct {
	gateway CartGateway
	logger  *zap.SugaredLogger

	mu          sync.Mutex
	projections map[string]*cartProjection
}

func NewCartService(gw CartGateway, logger *zap.SugaredLogger) *CartService {
	return &CartService{
		gateway:     gw,
		logger:      logger,
		projections: make(map[string]*cartProjection),
	}
}

// FetchCart loads the owner's aggregate. An owner with no cart yet gets a
// synthetic empty aggregate; absence is not a failure.
func (s *CartService) FetchCart(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, &ValidationError{Reason: "user id is required"}
	}

	cart, err := s.gateway.GetCart(ctx, userID)
	if err != nil {
		var upstream *gateway.UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
			return s.adopt(userID, &models.Cart{UserID: userID}), nil
		}
		return nil, s.fail(userID, err)
	}
	return s.adopt(userID, cart), nil
}

// AddLine adds a product to the owner's cart. Adding a product already in
// that owner's current aggregate increments its quantity instead of
// duplicating the line; other owners' lines never influence the merge.
func (s *CartService) AddLine(ctx context.Context, req *AddLineRequest) (*models.Cart, error) {
	if req.UserID == "" {
		return nil, &ValidationError{Reason: "user id is required"}
	}
	if req.Quantity < 1 {
		return nil, &ValidationError{Reason: "quantity must be at least 1"}
	}

	s.mu.Lock()
	var existingQuantity int
	if p, ok := s.projections[req.UserID]; ok && p.state != CartStateEmpty {
		if existing := p.current.FindItem(req.ProductID); existing != nil {
			existingQuantity = existing.Quantity
		}
	}
	s.mu.Unlock()

	if existingQuantity > 0 {
		return s.SetQuantity(ctx, req.UserID, req.ProductID, existingQuantity+req.Quantity)
	}

	cart, err := s.gateway.AddCartItem(ctx, &gateway.AddCartItemRequest{
		UserID:               req.UserID,
		ProductID:            req.ProductID,
		Title:                req.Title,
		Price:                req.Price,
		Quantity:             req.Quantity,
		Thumbnail:            req.Thumbnail,
		CarbonFootprintScore: req.CarbonFootprintScore,
	})
	if err != nil {
		return nil, s.fail(req.UserID, err)
	}
	return s.adopt(req.UserID, cart), nil
}

// SetQuantity updates a line to the exact requested quantity. A quantity
// below one is a removal, not an update.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.Cart, error) {
	if userID == "" {
		return nil, &ValidationError{Reason: "user id is required"}
	}
	if quantity < 1 {
		return s.RemoveLine(ctx, userID, productID)
	}

	cart, err := s.gateway.UpdateCartItemQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.fail(userID, err)
	}
	return s.adopt(userID, cart), nil
}

func (s *CartService) RemoveLine(ctx context.Context, userID string, productID int64) (*models.Cart, error) {
	if userID == "" {
		return nil, &ValidationError{Reason: "user id is required"}
	}

	cart, err := s.gateway.RemoveCartItem(ctx, userID, productID)
	if err != nil {
		return nil, s.fail(userID, err)
	}
	return s.adopt(userID, cart), nil
}

// Clear empties the cart. The record itself survives on the server side.
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, &ValidationError{Reason: "user id is required"}
	}

	cart, err := s.gateway.ClearCart(ctx, userID)
	if err != nil {
		return nil, s.fail(userID, err)
	}
	return s.adopt(userID, cart), nil
}

// Snapshot returns the owner's current state, a copy of their aggregate
// for display, and the last operation error when the state is
// CartStateError. An owner with no projection yet gets CartStateEmpty.
func (s *CartService) Snapshot(userID string) (CartState, models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projections[userID]
	if !ok {
		return CartStateEmpty, models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return p.state, copyCart(&p.current), p.lastErr
}

func (s *CartService) adopt(userID string, cart *models.Cart) *models.Cart {
	if cart.UserID == "" {
		cart.UserID = userID
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	s.mu.Lock()
	s.projections[userID] = &cartProjection{
		state:   CartStateLoaded,
		current: copyCart(cart),
	}
	s.mu.Unlock()

	return cart
}

// fail records the error without touching the owner's previously adopted
// aggregate, so the view keeps showing the last known cart.
func (s *CartService) fail(userID string, err error) error {
	s.logger.Warnw("cart operation failed", "user_id", userID, "error", err)

	s.mu.Lock()
	p, ok := s.projections[userID]
	if !ok {
		p = &cartProjection{}
		s.projections[userID] = p
	}
	p.state = CartStateError
	p.lastErr = err
	s.mu.Unlock()

	return err
}

func copyCart(cart *models.Cart) models.Cart {
	copied := *cart
	copied.Items = append([]models.CartItem{}, cart.Items...)
	return copied
}
