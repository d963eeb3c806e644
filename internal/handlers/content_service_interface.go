package handlers

import (
	"context"

	"golang-storefront-client/internal/models"
)

// ContentServiceInterface defines the loader operations the content
// handlers need. The bool result reports whether the data was served from
// the local store because the network was unreachable.
type ContentServiceInterface interface {
	ListProducts(ctx context.Context) ([]models.Product, bool, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, bool, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListBlogs(ctx context.Context) ([]models.Blog, bool, error)
	GetBlog(ctx context.Context, id string) (*models.Blog, bool, error)
	CreateBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}
