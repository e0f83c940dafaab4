package handlers

import (
	"paperstore/internal/app"
	"paperstore/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	authHandler := NewAuthHandler(services.AuthService, services.ActivityService)
	customerAuthHandler := NewCustomerAuthHandler(services.AuthService, services.OTPService, services.CustomerRepo, services.SMSSender, services.ActivityService)
	productHandler := NewProductHandler(services.ProductRepo, services.ActivityService)
	cartHandler := NewCartHandler(services.CartStore, services.ProductRepo)
	orderHandler := NewOrderHandler(services.OrderService, services.OrderRepo, services.CustomerRepo, services.CartStore, services.ActivityService)
	paymentHandler := NewPaymentHandler(services.PaymentService, services.PaymentRepo, services.OrderRepo, services.ActivityService)
	hoursHandler := NewWorkingHoursHandler(services.HoursService, services.ActivityService)
	userHandler := NewUserHandler(services.UserRepo, services.AuthService, services.ActivityService)
	customerHandler := NewCustomerHandler(services.CustomerRepo)
	activityHandler := NewActivityHandler(services.ActivityRepo)
	dashboardHandler := NewDashboardHandler(services.DB)
	wsHandler := NewWebSocketHandler(services.AuthService, services.OrderFeed)

	// Public storefront routes (browsing stays open outside working hours)
	store := api.Group("/store")
	store.GET("/catalog", productHandler.Storefront)
	store.GET("/status", hoursHandler.Status)

	// Payment tracking is public: the code itself is the credential
	api.GET("/payments/:code", paymentHandler.GetByTrackingCode)

	// Staff auth routes (no authentication required)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Customer OTP login routes (no authentication required)
	customerAuth := api.Group("/customer/auth")
	customerAuth.POST("/otp", customerAuthHandler.RequestOTP)
	customerAuth.POST("/verify", customerAuthHandler.VerifyOTP)

	// WebSocket endpoint (handles authentication manually via query parameter)
	api.GET("/ws", wsHandler.HandleWebSocket)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(services.AuthService))

	// Staff profile routes
	profileAuth := protected.Group("/auth", middleware.StaffOnly())
	profileAuth.PUT("/profile", authHandler.UpdateProfile)
	profileAuth.PUT("/change-password", authHandler.ChangePassword)

	// Customer routes
	customer := protected.Group("/customer", middleware.CustomerOnly())
	customerCart := customer.Group("/cart")
	customerCart.GET("", cartHandler.Summary)
	customerCart.DELETE("", cartHandler.Clear)
	customerCart.POST("/select", cartHandler.Select)
	customerCart.PUT("/quantity", cartHandler.SetQuantity)
	customerCart.DELETE("/items/:id", cartHandler.Remove)

	customerOrders := customer.Group("/orders")
	customerOrders.GET("", orderHandler.MyOrders)
	customerOrders.GET("/:id", orderHandler.MyOrder)
	// Ordering is gated on the working window; browsing and history are not
	customerOrders.POST("", orderHandler.Checkout, middleware.RequireOpenStore(services.HoursService))
	customerOrders.POST("/:id/pay", paymentHandler.Initiate)

	// Staff routes
	staff := protected.Group("", middleware.StaffOnly())
	staff.GET("/dashboard/stats", dashboardHandler.Stats)
	staff.GET("/working-hours", hoursHandler.Get)
	staff.GET("/customers", customerHandler.List)

	products := staff.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.GetByID)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	orders := staff.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/number/:number", orderHandler.GetByNumber)
	orders.GET("/:id", orderHandler.GetByID)
	orders.GET("/:id/history", orderHandler.History)
	orders.GET("/:id/payments", paymentHandler.ListByOrder)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)

	payments := staff.Group("/payments")
	payments.PUT("/:id/success", paymentHandler.MarkSuccessful)
	payments.PUT("/:id/fail", paymentHandler.MarkFailed)
	payments.PUT("/:id/expire", paymentHandler.MarkExpired)

	// Super admin routes
	admin := protected.Group("", middleware.SuperAdminOnly())
	admin.PUT("/working-hours", hoursHandler.Update)
	admin.GET("/activity", activityHandler.List)

	users := admin.Group("/users")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
}
