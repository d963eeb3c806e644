package handlers

import (
	"net/http"
	"strconv"

	"golang-storefront-client/internal/middleware"
	"golang-storefront-client/internal/models"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentService ContentServiceInterface
}

func NewContentHandler(contentService ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// RegisterRoutes registers the product and blog routes. Reads are open;
// writes ride on whatever session token the caller presents. The optional
// session middleware is attached to the content routes only, so routes
// registered later on the same group are not affected.
func (h *ContentHandler) RegisterRoutes(router *gin.RouterGroup, sessionMiddleware *middleware.SessionMiddleware) {
	session := sessionMiddleware.SessionOptional()

	products := router.Group("/products", session)
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
	router.POST("/product/add", session, h.CreateProduct)
	router.PUT("/product/:id", session, h.UpdateProduct)

	blogs := router.Group("/blogs", session)
	{
		blogs.GET("", h.ListBlogs)
		blogs.GET("/:id", h.GetBlog)
		blogs.DELETE("/:id", h.DeleteBlog)
	}
	router.POST("/blog/add", session, h.CreateBlog)
	router.PUT("/blog/:id", session, h.UpdateBlog)
}

// ListProducts returns the catalog. The offline flag tells the view layer
// the data came from the local store because the network was unreachable.
func (h *ContentHandler) ListProducts(c *gin.Context) {
	products, fromCache, err := h.contentService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"offline":  fromCache,
	})
}

func (h *ContentHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid product id",
			Message: err.Error(),
		})
		return
	}

	product, fromCache, err := h.contentService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"offline": fromCache,
	})
}

func (h *ContentHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	created, err := h.contentService.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid product id",
			Message: err.Error(),
		})
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	updated, err := h.contentService.UpdateProduct(c.Request.Context(), id, &product)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid product id",
			Message: err.Error(),
		})
		return
	}

	if err := h.contentService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

func (h *ContentHandler) ListBlogs(c *gin.Context) {
	blogs, fromCache, err := h.contentService.ListBlogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blogs":   blogs,
		"offline": fromCache,
	})
}

func (h *ContentHandler) GetBlog(c *gin.Context) {
	blog, fromCache, err := h.contentService.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blog":    blog,
		"offline": fromCache,
	})
}

func (h *ContentHandler) CreateBlog(c *gin.Context) {
	var blog models.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	created, err := h.contentService.CreateBlog(c.Request.Context(), &blog)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ContentHandler) UpdateBlog(c *gin.Context) {
	var blog models.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	updated, err := h.contentService.UpdateBlog(c.Request.Context(), c.Param("id"), &blog)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler) DeleteBlog(c *gin.Context) {
	if err := h.contentService.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully."})
}
