package handlers

import (
	"net/http"
	"strconv"

	"menulink/internal/logger"
	"menulink/internal/models"
	"menulink/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultOrderLimit = 50

// MerchantHandler serves login and the merchant dashboard. Every dashboard
// call uses the access token stored for the request's session.
type MerchantHandler struct {
	authService  services.AuthService
	menuService  services.MenuService
	orderService services.OrderService
	log          *logger.Logger
}

func NewMerchantHandler(
	authService services.AuthService,
	menuService services.MenuService,
	orderService services.OrderService,
	log *logger.Logger,
) *MerchantHandler {
	return &MerchantHandler{
		authService:  authService,
		menuService:  menuService,
		orderService: orderService,
		log:          log,
	}
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *MerchantHandler) Register(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	me, err := h.authService.Register(c.Request.Context(), sessionID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if me == nil {
		c.JSON(http.StatusCreated, gin.H{"registered": true})
		return
	}
	c.JSON(http.StatusCreated, h.merchantResponse(me))
}

func (h *MerchantHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	me, err := h.authService.Login(c.Request.Context(), sessionID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, h.merchantResponse(me))
}

func (h *MerchantHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), sessionID(c))
	c.Status(http.StatusNoContent)
}

func (h *MerchantHandler) Me(c *gin.Context) {
	me, err := h.authService.Me(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, h.merchantResponse(me))
}

func (h *MerchantHandler) merchantResponse(me *models.Merchant) gin.H {
	return gin.H{
		"user":    me,
		"menuUrl": h.menuService.MenuURL(me.Slug),
	}
}

func (h *MerchantHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuService.MerchantMenu(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *MerchantHandler) UpdateMenu(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c)
		return
	}
	out, err := h.menuService.UpdateMenu(c.Request.Context(), sessionID(c), payload)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) ListCategories(c *gin.Context) {
	h.categories(c, http.StatusOK)(h.menuService.Categories(c.Request.Context(), sessionID(c)))
}

func (h *MerchantHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	h.categories(c, http.StatusCreated)(h.menuService.CreateCategory(c.Request.Context(), sessionID(c), req))
}

func (h *MerchantHandler) UpdateCategory(c *gin.Context) {
	var req models.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	h.categories(c, http.StatusOK)(h.menuService.UpdateCategory(c.Request.Context(), sessionID(c), c.Param("id"), req))
}

func (h *MerchantHandler) DeleteCategory(c *gin.Context) {
	h.categories(c, http.StatusOK)(h.menuService.DeleteCategory(c.Request.Context(), sessionID(c), c.Param("id")))
}

func (h *MerchantHandler) CreateProduct(c *gin.Context) {
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	h.categories(c, http.StatusCreated)(h.menuService.CreateProduct(c.Request.Context(), sessionID(c), req))
}

func (h *MerchantHandler) UpdateProduct(c *gin.Context) {
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	h.categories(c, http.StatusOK)(h.menuService.UpdateProduct(c.Request.Context(), sessionID(c), c.Param("id"), req))
}

func (h *MerchantHandler) DeleteProduct(c *gin.Context) {
	h.categories(c, http.StatusOK)(h.menuService.DeleteProduct(c.Request.Context(), sessionID(c), c.Param("id")))
}

// categories writes the refreshed category list every dashboard write
// returns.
func (h *MerchantHandler) categories(c *gin.Context, status int) func([]models.MenuCategory, error) {
	return func(cats []models.MenuCategory, err error) {
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(status, gin.H{"data": cats})
	}
}

func (h *MerchantHandler) ListOrders(c *gin.Context) {
	limit := defaultOrderLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}
	orders, err := h.orderService.MerchantOrders(c.Request.Context(), sessionID(c), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (h *MerchantHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	order, err := h.orderService.UpdateStatus(c.Request.Context(), sessionID(c), c.Param("order_number"), req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
