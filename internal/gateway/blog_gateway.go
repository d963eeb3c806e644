package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-storefront-client/internal/models"
)

func (c *Client) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/blogs", nil)
	if err != nil {
		return nil, err
	}

	var blogs []models.Blog
	if err := json.Unmarshal(respBody, &blogs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blogs response: %v", err)
	}
	return blogs, nil
}

func (c *Client) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/blogs/"+id, nil)
	if err != nil {
		return nil, err
	}

	var blog models.Blog
	if err := json.Unmarshal(respBody, &blog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog response: %v", err)
	}
	return &blog, nil
}

func (c *Client) CreateBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/blog/add", blog)
	if err != nil {
		return nil, err
	}

	var created models.Blog
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog response: %v", err)
	}
	return &created, nil
}

func (c *Client) UpdateBlog(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error) {
	respBody, err := c.doRequest(ctx, http.MethodPut, "/api/blog/"+id, blog)
	if err != nil {
		return nil, err
	}

	var updated models.Blog
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog response: %v", err)
	}
	return &updated, nil
}

func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/api/blogs/"+id, nil)
	return err
}
