package routes

import (
	"github.com/gin-gonic/gin"

	"shopdash/auth"
	"shopdash/controllers"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Sessions      *auth.Manager
	Auth          *controllers.AuthController
	Dashboard     *controllers.DashboardController
	Products      *controllers.ProductController
	Orders        *controllers.OrderController
	Feedback      *controllers.FeedbackController
	Notifications *controllers.NotificationController
	Profile       *controllers.ProfileController
	Shop          *controllers.ShopController
}

func RegisterRoutes(router *gin.Engine, c Controllers) {
	api := router.Group("/api")

	api.POST("/login", c.Auth.Login)

	authed := api.Group("", auth.Middleware(c.Sessions))
	{
		authed.POST("/logout", c.Auth.Logout)

		// Dashboard
		authed.GET("/dashboard", c.Dashboard.GetDashboard)

		// Product routes
		authed.GET("/products", c.Products.ListProducts)
		authed.POST("/products", c.Products.CreateProduct)
		authed.PUT("/products/:id", c.Products.UpdateProduct)
		authed.DELETE("/products/:id", c.Products.DeleteProduct)
		authed.POST("/products/:id/image", c.Products.UploadImage)
		authed.POST("/products/:id/gallery", c.Products.UploadGallery)

		// Order routes
		authed.GET("/orders", c.Orders.ListOrders)
		authed.GET("/orders/:id", c.Orders.GetOrder)
		authed.POST("/orders/:id/approve", c.Orders.ApproveOrder)
		authed.POST("/orders/:id/delivery", c.Orders.SetDelivery)

		// Feedback and notifications
		authed.GET("/feedback", c.Feedback.ListFeedback)
		authed.GET("/notifications", c.Notifications.ListNotifications)

		// Account and shop profile
		authed.GET("/profile", c.Profile.GetProfile)
		authed.PUT("/profile", c.Profile.UpdateProfile)
		authed.POST("/profile/picture", c.Profile.UploadProfilePicture)
		authed.GET("/shop", c.Shop.GetShop)
		authed.PUT("/shop", c.Shop.UpdateShop)
		authed.POST("/shop/photo", c.Shop.UploadPhoto)
		authed.POST("/shop/background", c.Shop.UploadBackground)
	}
}
