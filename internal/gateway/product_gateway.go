package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-storefront-client/internal/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/products", nil)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(respBody, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products response: %v", err)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(respBody, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product response: %v", err)
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/product/add", product)
	if err != nil {
		return nil, err
	}

	var created models.Product
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product response: %v", err)
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	respBody, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/product/%d", id), product)
	if err != nil {
		return nil, err
	}

	var updated models.Product
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product response: %v", err)
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	return err
}
