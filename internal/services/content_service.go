package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"golang-storefront-client/internal/gateway"
	"golang-storefront-client/internal/models"
	"golang-storefront-client/pkg/keystore"

	"go.uber.org/zap"
)

// ContentGateway is the remote API surface the loader depends on.
type ContentGateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlog(ctx context.Context, id string) (*models.Blog, error)
	CreateBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	FileURL(filename string) string
}

// ContentService is the cache-aside loader for catalog products and blog
// posts. Every successful remote read warms the local store; reads fall
// back to the store only when the network is unreachable. Server-side
// errors are never cached around.
type ContentService struct {
	gateway ContentGateway
	store   keystore.Store
	logger  *zap.SugaredLogger
}

func NewContentService(gw ContentGateway, store keystore.Store, logger *zap.SugaredLogger) *ContentService {
	return &ContentService{
		gateway: gw,
		store:   store,
		logger:  logger,
	}
}

func (s *ContentService) ListProducts(ctx context.Context) ([]models.Product, bool, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err == nil {
		for i := range products {
			s.normalizeProductMedia(&products[i])
		}
		if cacheErr := s.cacheProducts(ctx, products); cacheErr != nil {
			s.logger.Warnw("failed to cache products", "error", cacheErr)
		}
		return products, false, nil
	}

	if !errors.Is(err, gateway.ErrUnreachable) {
		return nil, false, err
	}

	s.logger.Infow("remote api unreachable, serving products from local store", "error", err)
	cached, cacheErr := s.cachedProducts(ctx)
	if cacheErr != nil {
		return nil, false, cacheErr
	}
	if len(cached) == 0 {
		return nil, false, ErrNoCachedData
	}
	return cached, true, nil
}

func (s *ContentService) GetProduct(ctx context.Context, id int64) (*models.Product, bool, error) {
	product, err := s.gateway.GetProduct(ctx, id)
	if err == nil {
		s.normalizeProductMedia(product)
		if cacheErr := s.cacheProducts(ctx, []models.Product{*product}); cacheErr != nil {
			s.logger.Warnw("failed to cache product", "id", id, "error", cacheErr)
		}
		return product, false, nil
	}

	if !errors.Is(err, gateway.ErrUnreachable) {
		return nil, false, err
	}

	s.logger.Infow("remote api unreachable, serving product from local store", "id", id, "error", err)
	payload, cacheErr := s.store.Get(ctx, keystore.PartitionProducts, strconv.FormatInt(id, 10))
	if errors.Is(cacheErr, keystore.ErrNotFound) {
		return nil, false, ErrNotCached
	}
	if cacheErr != nil {
		return nil, false, cacheErr
	}

	var cached models.Product
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached product: %v", err)
	}
	return &cached, true, nil
}

func (s *ContentService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	created, err := s.gateway.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	s.normalizeProductMedia(created)
	if cacheErr := s.cacheProducts(ctx, []models.Product{*created}); cacheErr != nil {
		s.logger.Warnw("failed to cache created product", "id", created.ID, "error", cacheErr)
	}
	return created, nil
}

func (s *ContentService) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	updated, err := s.gateway.UpdateProduct(ctx, id, product)
	if err != nil {
		return nil, err
	}
	s.normalizeProductMedia(updated)
	if cacheErr := s.cacheProducts(ctx, []models.Product{*updated}); cacheErr != nil {
		s.logger.Warnw("failed to cache updated product", "id", id, "error", cacheErr)
	}
	return updated, nil
}

func (s *ContentService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, keystore.PartitionProducts, strconv.FormatInt(id, 10)); err != nil {
		s.logger.Warnw("failed to evict deleted product", "id", id, "error", err)
	}
	return nil
}

func (s *ContentService) ListBlogs(ctx context.Context) ([]models.Blog, bool, error) {
	blogs, err := s.gateway.ListBlogs(ctx)
	if err == nil {
		for i := range blogs {
			s.normalizeBlogMedia(&blogs[i])
		}
		if cacheErr := s.cacheBlogs(ctx, blogs); cacheErr != nil {
			s.logger.Warnw("failed to cache blogs", "error", cacheErr)
		}
		return blogs, false, nil
	}

	if !errors.Is(err, gateway.ErrUnreachable) {
		return nil, false, err
	}

	s.logger.Infow("remote api unreachable, serving blogs from local store", "error", err)
	cached, cacheErr := s.cachedBlogs(ctx)
	if cacheErr != nil {
		return nil, false, cacheErr
	}
	if len(cached) == 0 {
		return nil, false, ErrNoCachedData
	}
	return cached, true, nil
}

func (s *ContentService) GetBlog(ctx context.Context, id string) (*models.Blog, bool, error) {
	blog, err := s.gateway.GetBlog(ctx, id)
	if err == nil {
		s.normalizeBlogMedia(blog)
		if cacheErr := s.cacheBlogs(ctx, []models.Blog{*blog}); cacheErr != nil {
			s.logger.Warnw("failed to cache blog", "id", id, "error", cacheErr)
		}
		return blog, false, nil
	}

	if !errors.Is(err, gateway.ErrUnreachable) {
		return nil, false, err
	}

	s.logger.Infow("remote api unreachable, serving blog from local store", "id", id, "error", err)
	payload, cacheErr := s.store.Get(ctx, keystore.PartitionBlogs, id)
	if errors.Is(cacheErr, keystore.ErrNotFound) {
		return nil, false, ErrNotCached
	}
	if cacheErr != nil {
		return nil, false, cacheErr
	}

	var cached models.Blog
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached blog: %v", err)
	}
	return &cached, true, nil
}

func (s *ContentService) CreateBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	created, err := s.gateway.CreateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}
	s.normalizeBlogMedia(created)
	if cacheErr := s.cacheBlogs(ctx, []models.Blog{*created}); cacheErr != nil {
		s.logger.Warnw("failed to cache created blog", "id", created.ID, "error", cacheErr)
	}
	return created, nil
}

func (s *ContentService) UpdateBlog(ctx context.Context, id string, blog *models.Blog) (*models.Blog, error) {
	updated, err := s.gateway.UpdateBlog(ctx, id, blog)
	if err != nil {
		return nil, err
	}
	s.normalizeBlogMedia(updated)
	if cacheErr := s.cacheBlogs(ctx, []models.Blog{*updated}); cacheErr != nil {
		s.logger.Warnw("failed to cache updated blog", "id", id, "error", cacheErr)
	}
	return updated, nil
}

func (s *ContentService) DeleteBlog(ctx context.Context, id string) error {
	if err := s.gateway.DeleteBlog(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, keystore.PartitionBlogs, id); err != nil {
		s.logger.Warnw("failed to evict deleted blog", "id", id, "error", err)
	}
	return nil
}

// normalizeProductMedia rewrites the media descriptor's URL so it resolves
// independently of the payload it arrived in. The string-encoded legacy
// form is already parsed by MediaFile.UnmarshalJSON.
func (s *ContentService) normalizeProductMedia(product *models.Product) {
	if product.ImageFile != nil && product.ImageFile.Filename != "" {
		product.ImageFile.ImageURL = s.gateway.FileURL(product.ImageFile.Filename)
	}
}

func (s *ContentService) normalizeBlogMedia(blog *models.Blog) {
	if blog.ImageFile != nil && blog.ImageFile.Filename != "" {
		blog.ImageFile.ImageURL = s.gateway.FileURL(blog.ImageFile.Filename)
	}
}

// cacheProducts upserts the fetched set by id. Entries absent from the set
// are left in place; the cache is only ever overwritten, never pruned, by
// a read.
func (s *ContentService) cacheProducts(ctx context.Context, products []models.Product) error {
	entries := make(map[string][]byte, len(products))
	for i := range products {
		payload, err := json.Marshal(&products[i])
		if err != nil {
			return fmt.Errorf("failed to encode product %d: %v", products[i].ID, err)
		}
		entries[strconv.FormatInt(products[i].ID, 10)] = payload
	}
	return s.store.PutAll(ctx, keystore.PartitionProducts, entries)
}

func (s *ContentService) cacheBlogs(ctx context.Context, blogs []models.Blog) error {
	entries := make(map[string][]byte, len(blogs))
	for i := range blogs {
		payload, err := json.Marshal(&blogs[i])
		if err != nil {
			return fmt.Errorf("failed to encode blog %s: %v", blogs[i].ID, err)
		}
		entries[blogs[i].ID] = payload
	}
	return s.store.PutAll(ctx, keystore.PartitionBlogs, entries)
}

func (s *ContentService) cachedProducts(ctx context.Context) ([]models.Product, error) {
	entries, err := s.store.GetAll(ctx, keystore.PartitionProducts)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(entries))
	for id, payload := range entries {
		var product models.Product
		if err := json.Unmarshal(payload, &product); err != nil {
			return nil, fmt.Errorf("failed to decode cached product %s: %v", id, err)
		}
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *ContentService) cachedBlogs(ctx context.Context) ([]models.Blog, error) {
	entries, err := s.store.GetAll(ctx, keystore.PartitionBlogs)
	if err != nil {
		return nil, err
	}

	blogs := make([]models.Blog, 0, len(entries))
	for id, payload := range entries {
		var blog models.Blog
		if err := json.Unmarshal(payload, &blog); err != nil {
			return nil, fmt.Errorf("failed to decode cached blog %s: %v", id, err)
		}
		blogs = append(blogs, blog)
	}
	sort.Slice(blogs, func(i, j int) bool { return blogs[i].ID < blogs[j].ID })
	return blogs, nil
}
