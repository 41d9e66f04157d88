package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DivyaPradhan23/grocery-backend/controllers"
	"github.com/DivyaPradhan23/grocery-backend/middleware"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Wishlist *services.WishlistService
	Reports  *services.ReportService
	Promos   *services.PromoService
}

// SetupRoutes mounts the API under /api. uploadDir is served at /uploads
// when non-empty.
func SetupRoutes(router *gin.Engine, svc Services, uploadDir string) {
	controllers.UseJSONFieldNames()

	authCtrl := controllers.NewAuthController(svc.Auth)
	productCtrl := controllers.NewProductController(svc.Products)
	cartCtrl := controllers.NewCartController(svc.Cart)
	orderCtrl := controllers.NewOrderController(svc.Checkout)
	wishlistCtrl := controllers.NewWishlistController(svc.Wishlist)
	reportCtrl := controllers.NewReportController(svc.Reports)
	promoCtrl := controllers.NewPromoController(svc.Promos)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/register", authCtrl.Register)
		api.POST("/token", authCtrl.ObtainToken)
		api.POST("/token/refresh", authCtrl.RefreshToken)

		api.GET("/products", productCtrl.List)
		api.GET("/products/filter", productCtrl.Filter)
		api.GET("/products/:id", productCtrl.Get)
	}

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(svc.Auth))
	{
		auth.POST("/cart/add", cartCtrl.Add)
		auth.GET("/cart", cartCtrl.View)
		auth.DELETE("/cart/:id/remove", cartCtrl.Remove)

		auth.POST("/checkout", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.List)

		auth.GET("/wishlist", wishlistCtrl.View)
		auth.POST("/wishlist", wishlistCtrl.Add)
		auth.DELETE("/wishlist/:id/remove", wishlistCtrl.Remove)
	}

	manager := api.Group("")
	manager.Use(middleware.AuthMiddleware(svc.Auth), middleware.ManagerOnly())
	{
		manager.POST("/products/create", productCtrl.Create)
		manager.PUT("/products/:id/update", productCtrl.Update)
		manager.DELETE("/products/:id/delete", productCtrl.Delete)
		manager.POST("/products/:id/image", productCtrl.UploadImage)

		manager.GET("/report/sales", reportCtrl.Sales)
		manager.GET("/promos/low-stock", reportCtrl.LowStock)
		manager.GET("/promos", promoCtrl.List)
		manager.POST("/promos", promoCtrl.Create)
	}

	if uploadDir != "" {
		router.Static("/uploads", uploadDir)
	}
}
