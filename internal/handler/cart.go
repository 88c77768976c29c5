package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triphaven/internal/domain"
	"triphaven/internal/service"
)

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// ListCartItems handles GET /carts?email=
func (h *CartHandler) ListCartItems(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: true, Message: "Missing email"})
		return
	}

	items, err := h.cartService.ListCartItems(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(c, http.StatusOK, items)
}

// AddCartItem handles POST /carts
func (h *CartHandler) AddCartItem(c *gin.Context) {
	var item domain.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: true, Message: "invalid request body"})
		return
	}

	result, err := h.cartService.AddCartItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, result)
}

// RemoveCartItem handles DELETE /delete-carts/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	result, err := h.cartService.RemoveCartItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, result)
}
