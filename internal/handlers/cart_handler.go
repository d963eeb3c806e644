package handlers

import (
	"net/http"
	"strconv"

	"golang-storefront-client/internal/middleware"
	"golang-storefront-client/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the cart routes. All cart operations require a
// session: the owner identity comes from the bearer token, never from the
// request body.
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, sessionMiddleware *middleware.SessionMiddleware) {
	cart := router.Group("/cart", sessionMiddleware.SessionRequired())
	{
		cart.GET("", h.GetCart)
		cart.GET("/state", h.GetState)
		cart.POST("/add", h.AddLine)
		cart.PUT("/items/:product_id", h.SetQuantity)
		cart.DELETE("/items/:product_id", h.RemoveLine)
		cart.DELETE("", h.Clear)
	}
}

type addLineBody struct {
	ProductID            int64   `json:"productId" binding:"required"`
	Title                string  `json:"title" binding:"required"`
	Price                float64 `json:"price" binding:"gte=0"`
	Quantity             int     `json:"quantity" binding:"required,gte=1"`
	Thumbnail            string  `json:"thumbnail,omitempty"`
	CarbonFootprintScore float64 `json:"carbonFootprintScore,omitempty"`
}

type setQuantityBody struct {
	Quantity int `json:"quantity"`
}

// GetState reports the caller's local projection without touching the
// remote service: the last adopted aggregate, its lifecycle state, and the
// error that produced an error state, if any.
func (h *CartHandler) GetState(c *gin.Context) {
	state, cart, lastErr := h.cartService.Snapshot(c.GetString("user_id"))

	resp := gin.H{
		"state": state,
		"cart":  cart,
	}
	if lastErr != nil {
		resp["error"] = lastErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.FetchCart(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddLine(c *gin.Context) {
	var body addLineBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	cart, err := h.cartService.AddLine(c.Request.Context(), &services.AddLineRequest{
		UserID:               c.GetString("user_id"),
		ProductID:            body.ProductID,
		Title:                body.Title,
		Price:                body.Price,
		Quantity:             body.Quantity,
		Thumbnail:            body.Thumbnail,
		CarbonFootprintScore: body.CarbonFootprintScore,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cart)
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid product id",
			Message: err.Error(),
		})
		return
	}

	var body setQuantityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	cart, err := h.cartService.SetQuantity(c.Request.Context(), c.GetString("user_id"), productID, body.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid product id",
			Message: err.Error(),
		})
		return
	}

	cart, err := h.cartService.RemoveLine(c.Request.Context(), c.GetString("user_id"), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.cartService.Clear(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}
