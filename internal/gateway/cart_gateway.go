package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-storefront-client/internal/models"
)

type AddCartItemRequest struct {
	UserID               string  `json:"userId"`
	ProductID            int64   `json:"productId"`
	Title                string  `json:"title"`
	Price                float64 `json:"price"`
	Quantity             int     `json:"quantity"`
	Thumbnail            string  `json:"thumbnail,omitempty"`
	CarbonFootprintScore float64 `json:"carbonFootprintScore,omitempty"`
}

// cartEnvelope is the mutation response shape: {"message": ..., "cart": ...}.
type cartEnvelope struct {
	Message string      `json:"message"`
	Cart    models.Cart `json:"cart"`
}

func (c *Client) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/cart/"+userID, nil)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(respBody, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart response: %v", err)
	}
	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, req *AddCartItemRequest) (*models.Cart, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/cart/add", req)
	if err != nil {
		return nil, err
	}
	return unmarshalCartEnvelope(respBody)
}

func (c *Client) UpdateCartItemQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.Cart, error) {
	body := map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
	}
	respBody, err := c.doRequest(ctx, http.MethodPut, "/api/cart/"+userID, body)
	if err != nil {
		return nil, err
	}
	return unmarshalCartEnvelope(respBody)
}

func (c *Client) RemoveCartItem(ctx context.Context, userID string, productID int64) (*models.Cart, error) {
	body := map[string]interface{}{
		"productId": productID,
	}
	respBody, err := c.doRequest(ctx, http.MethodDelete, "/api/cart/"+userID, body)
	if err != nil {
		return nil, err
	}
	return unmarshalCartEnvelope(respBody)
}

func (c *Client) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	body := map[string]interface{}{
		"userId": userID,
	}
	respBody, err := c.doRequest(ctx, http.MethodDelete, "/api/cart", body)
	if err != nil {
		return nil, err
	}
	return unmarshalCartEnvelope(respBody)
}

func unmarshalCartEnvelope(respBody []byte) (*models.Cart, error) {
	var envelope cartEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart response: %v", err)
	}
	return &envelope.Cart, nil
}
