package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/palme/internal/config"
	"github.com/example/palme/internal/handlers"
	"github.com/example/palme/internal/middleware"
	"github.com/example/palme/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailerService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFromName, cfg.AdminEmail)
	paystack := services.NewPaystackService(cfg.PaystackBaseURL, cfg.PaystackSecretKey)
	orderService := services.NewOrderService(db, paystack, mailer)

	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	orderHandler := handlers.NewOrderHandler(db, orderService)
	productHandler := handlers.NewProductHandler(db)
	couponHandler := handlers.NewCouponHandler(db)
	locationHandler := handlers.NewLocationHandler(db)
	contentHandler := handlers.NewContentHandler(db)
	settingHandler := handlers.NewSettingHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	contactHandler := handlers.NewContactHandler(mailer)
	uploadHandler := handlers.NewUploadHandler(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Public storefront routes
	api.Post("/orders", orderHandler.Checkout)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/locations", locationHandler.ListLocations)
	api.Get("/content/:type", contentHandler.ListByType)
	api.Get("/settings", settingHandler.GetSettings)
	api.Post("/custom-request", contactHandler.BulkOrderRequest)
	api.Post("/newsletter", contactHandler.NewsletterSignup)

	// Admin routes
	admin := api.Group("", middleware.AuthMiddleware(cfg))

	admin.Get("/orders", orderHandler.ListOrders)
	admin.Get("/orders/:id", orderHandler.GetOrder)
	admin.Put("/orders/:id", orderHandler.UpdateStatus)
	admin.Delete("/orders/:id", orderHandler.DeleteOrder)

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)
	admin.Get("/inventory/low-stock", productHandler.ListLowStock)

	admin.Get("/coupons", couponHandler.ListCoupons)
	admin.Post("/coupons", couponHandler.CreateCoupon)
	admin.Put("/coupons/:id", couponHandler.UpdateCoupon)
	admin.Delete("/coupons/:id", couponHandler.DeleteCoupon)

	admin.Get("/locations/all", locationHandler.ListAllLocations)
	admin.Post("/locations", locationHandler.CreateLocation)
	admin.Put("/locations/:id", locationHandler.UpdateLocation)
	admin.Delete("/locations/:id", locationHandler.DeleteLocation)

	admin.Post("/content", contentHandler.CreateContent)
	admin.Put("/content/:id", contentHandler.UpdateContent)
	admin.Delete("/content/:id", contentHandler.DeleteContent)

	admin.Post("/settings", settingHandler.UpsertSetting)

	admin.Get("/admins", adminHandler.ListAdmins)
	admin.Post("/admins", adminHandler.CreateAdmin)
	admin.Delete("/admins/:id", adminHandler.DeleteAdmin)
	admin.Get("/dashboard", adminHandler.DashboardStats)

	admin.Post("/upload", uploadHandler.Upload)
}
