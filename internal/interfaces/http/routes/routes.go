// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/cart"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/checkout"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/coupon"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/payment"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/product"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/user"
	"github.com/socdefainder-oss/pronto-backend/internal/interfaces/http/handlers"
	"github.com/socdefainder-oss/pronto-backend/internal/interfaces/http/middleware"
	"github.com/socdefainder-oss/pronto-backend/internal/pkg/notify"
	"github.com/socdefainder-oss/pronto-backend/internal/pkg/pdf"
)

// SetupRoutes wires services and registers every API route
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	// Domain services
	productService := product.NewService(db, cfg)
	couponService := coupon.NewService(db, cfg)
	cartService := cart.NewService(redisClient, cfg, productService, couponService)
	orderService := order.NewService(db, cfg)
	userService := user.NewService(db, cfg)
	pdfService := pdf.NewService(cfg)

	var paymentService checkout.PaymentSessionCreator
	if mp, err := payment.NewMercadoPagoService(cfg, orderService, logger); err != nil {
		logger.WithError(err).Warn("Mercado Pago disabled: online payments will fail")
	} else {
		paymentService = mp
	}

	var notifier checkout.OrderNotifier
	if tg, err := notify.NewTelegramNotifier(cfg, logger); err != nil {
		logger.WithError(err).Warn("Telegram notifications disabled")
	} else if tg != nil {
		notifier = tg
	}

	checkoutService := checkout.NewService(redisClient, cfg, cartService, orderService, paymentService, notifier, logger)

	// Handlers
	menuHandler := handlers.NewMenuHandler(productService, cfg)
	cartHandler := handlers.NewCartHandler(cartService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, pdfService, cfg)
	authHandler := handlers.NewAuthHandler(userService, cfg)
	couponHandler := handlers.NewCouponHandler(couponService, cfg)

	// Public menu
	menu := rg.Group("/menu")
	{
		menu.GET("", menuHandler.GetMenu)
		menu.GET("/items", menuHandler.GetItems)
		menu.GET("/items/:id", menuHandler.GetItem)
	}

	// Session cart
	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cartGroup.POST("/coupon", cartHandler.ApplyCoupon)
		cartGroup.DELETE("/coupon", cartHandler.RemoveCoupon)
		cartGroup.PUT("/notes", cartHandler.SetNotes)
	}

	// Checkout wizard
	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.GET("", checkoutHandler.GetState)
		checkoutGroup.POST("/cart", checkoutHandler.SubmitCart)
		checkoutGroup.POST("/address", checkoutHandler.SubmitAddress)
		checkoutGroup.POST("/payment", checkoutHandler.SubmitPayment)
		checkoutGroup.POST("/customer", checkoutHandler.SubmitCustomer)
		checkoutGroup.POST("/back", checkoutHandler.Back)
	}

	// Public order tracking
	rg.GET("/orders/:number", orderHandler.TrackOrder)

	// Staff authentication
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.Me)
		}
	}

	// Kitchen display (any staff role)
	kitchen := rg.Group("/kitchen")
	kitchen.Use(middleware.AuthMiddleware(cfg))
	{
		kitchen.GET("/orders", orderHandler.KitchenQueue)
		kitchen.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	}

	// Admin routes
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.POST("/orders/:id/cancel", orderHandler.CancelOrder)
		admin.GET("/orders/:id/receipt", orderHandler.DownloadReceipt)

		admin.POST("/menu/items", menuHandler.CreateItem)
		admin.PUT("/menu/items/:id", menuHandler.UpdateItem)
		admin.DELETE("/menu/items/:id", menuHandler.DeleteItem)

		admin.GET("/coupons", couponHandler.ListCoupons)
		admin.POST("/coupons", couponHandler.CreateCoupon)
		admin.DELETE("/coupons/:id", couponHandler.DeactivateCoupon)

		admin.POST("/staff", authHandler.CreateStaff)
	}
}
