package handlers

import (
	"net/http"

	"menulink/internal/logger"

	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	AllowedOrigins []string
	Metrics        http.Handler
}

func NewRouter(storefront *StorefrontHandler, merchant *MerchantHandler, log *logger.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		router.Use(CORS(opts.AllowedOrigins))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	api := router.Group("/api")
	api.Use(Session(log), RequestLogger(log))
	{
		api.GET("/menu/:slug", storefront.GetMenu)
		api.POST("/menu/:slug/checkout", storefront.Checkout)
		api.GET("/orders/:order_number", storefront.GetOrder)

		cart := api.Group("/cart")
		cart.GET("", storefront.GetCart)
		cart.DELETE("", storefront.ClearCart)
		cart.POST("/items", storefront.AddItem)
		cart.PUT("/items/:product_id", storefront.UpdateItem)
		cart.DELETE("/items/:product_id", storefront.RemoveItem)
		cart.POST("/toggle", storefront.ToggleCart)
		cart.POST("/open", storefront.OpenCart)
		cart.POST("/close", storefront.CloseCart)

		auth := api.Group("/auth")
		auth.POST("/register", merchant.Register)
		auth.POST("/login", merchant.Login)
		auth.POST("/logout", merchant.Logout)
		auth.GET("/me", merchant.Me)

		dashboard := api.Group("/dashboard")
		dashboard.GET("/menu", merchant.GetMenu)
		dashboard.POST("/menu", merchant.UpdateMenu)
		dashboard.GET("/categories", merchant.ListCategories)
		dashboard.POST("/categories", merchant.CreateCategory)
		dashboard.PUT("/categories/:id", merchant.UpdateCategory)
		dashboard.DELETE("/categories/:id", merchant.DeleteCategory)
		dashboard.POST("/products", merchant.CreateProduct)
		dashboard.PUT("/products/:id", merchant.UpdateProduct)
		dashboard.DELETE("/products/:id", merchant.DeleteProduct)
		dashboard.GET("/orders", merchant.ListOrders)
		dashboard.PATCH("/orders/:order_number/status", merchant.UpdateOrderStatus)
	}

	return router
}
