package handlers

import (
	"net/http"

	"menulink/internal/logger"
	"menulink/internal/models"
	"menulink/internal/services"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves the customer side: public menu, cart and
// checkout.
type StorefrontHandler struct {
	menuService  services.MenuService
	cartService  services.CartService
	orderService services.OrderService
	log          *logger.Logger
}

func NewStorefrontHandler(
	menuService services.MenuService,
	cartService services.CartService,
	orderService services.OrderService,
	log *logger.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		menuService:  menuService,
		cartService:  cartService,
		orderService: orderService,
		log:          log,
	}
}

type AddItemRequest struct {
	Product  models.Product `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"min=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *StorefrontHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuService.PublicMenu(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *StorefrontHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.View(c.Request.Context(), sessionID(c)))
}

func (h *StorefrontHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	c.JSON(http.StatusOK, h.cartService.Add(c.Request.Context(), sessionID(c), req.Product, req.Quantity))
}

func (h *StorefrontHandler) UpdateItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	view := h.cartService.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("product_id"), *req.Quantity)
	c.JSON(http.StatusOK, view)
}

func (h *StorefrontHandler) RemoveItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.Remove(c.Request.Context(), sessionID(c), c.Param("product_id")))
}

func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.Clear(c.Request.Context(), sessionID(c)))
}

func (h *StorefrontHandler) ToggleCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.Toggle(c.Request.Context(), sessionID(c)))
}

func (h *StorefrontHandler) OpenCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.Open(c.Request.Context(), sessionID(c)))
}

func (h *StorefrontHandler) CloseCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartService.Close(c.Request.Context(), sessionID(c)))
}

// Checkout formats the session cart as a WhatsApp order. The client opens
// whatsappUrl in a new tab.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	result, err := h.orderService.Checkout(c.Request.Context(), sessionID(c), c.Param("slug"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StorefrontHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
