package routes

import (
	"motormandi_go/controllers"
	"motormandi_go/middleware"
	"motormandi_go/websocket"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API surface
func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.CORS())
	r.Use(middleware.Logger())

	api := r.Group("/api")
	{
		// ====== Auth routes (no token required) ======
		auth := api.Group("/auth")
		{
			authController := controllers.NewAuthController()
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/refresh", authController.RefreshToken)
			auth.POST("/logout", authController.Logout)
		}

		// ====== User routes ======
		users := api.Group("/users")
		{
			userController := controllers.NewUserController()
			users.GET("/online", userController.GetOnlineUsers)
			users.GET("/:id", userController.GetUserProfile)
			users.PUT("/profile", middleware.AuthMiddleware(), userController.UpdateProfile)
		}

		// ====== Car listing routes ======
		cars := api.Group("/cars")
		{
			carController := controllers.NewCarController()
			cars.GET("", carController.GetCars)
			cars.GET("/hot", carController.GetHotCars)
			cars.GET("/recommendations", middleware.AuthMiddleware(), carController.GetRecommendations)
			cars.GET("/mine", middleware.AuthMiddleware(), carController.GetMyCars)
			cars.GET("/:id", carController.GetCar)
			cars.POST("", middleware.AuthMiddleware(), carController.CreateCar)
			cars.PUT("/:id", middleware.AuthMiddleware(), carController.UpdateCar)
			cars.PUT("/:id/active", middleware.AuthMiddleware(), carController.ToggleCarActive)
			cars.DELETE("/:id", middleware.AuthMiddleware(), carController.DeleteCar)
		}

		// ====== Part listing routes ======
		parts := api.Group("/parts")
		{
			partController := controllers.NewPartController()
			parts.GET("", partController.GetParts)
			parts.GET("/mine", middleware.AuthMiddleware(), partController.GetMyParts)
			parts.GET("/:id", partController.GetPart)
			parts.POST("", middleware.AuthMiddleware(), partController.CreatePart)
			parts.PUT("/:id", middleware.AuthMiddleware(), partController.UpdatePart)
			parts.PUT("/:id/active", middleware.AuthMiddleware(), partController.TogglePartActive)
			parts.DELETE("/:id", middleware.AuthMiddleware(), partController.DeletePart)
		}

		// ====== Favorite routes ======
		favorites := api.Group("/favorites", middleware.AuthMiddleware())
		{
			favoriteController := controllers.NewFavoriteController()
			favorites.GET("", favoriteController.GetFavorites)
			favorites.POST("/:kind/:id", favoriteController.ToggleFavorite)
		}

		// ====== Order routes ======
		orders := api.Group("/orders", middleware.AuthMiddleware())
		{
			orderController := controllers.NewOrderController()
			orders.GET("", orderController.GetMyOrders)
			orders.GET("/received", orderController.GetReceivedOrders)
			orders.POST("", orderController.CreateOrder)
			orders.PUT("/:id/status", orderController.UpdateOrderStatus)
		}

		// ====== Search routes ======
		search := api.Group("/search")
		{
			searchController := controllers.NewSearchController()
			search.GET("", searchController.GlobalSearch)
			search.GET("/hot", searchController.GetHotSearchKeywords)
			search.GET("/suggestions", searchController.GetSuggestions)
		}

		// ====== Admin routes ======
		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			adminController := controllers.NewAdminController()
			carController := controllers.NewCarController()
			partController := controllers.NewPartController()
			admin.GET("/users", adminController.GetUsers)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.GET("/cars", adminController.GetAllCars)
			admin.GET("/parts", adminController.GetAllParts)
			admin.PUT("/cars/:id/feature", adminController.FeatureCar)
			admin.PUT("/parts/:id/feature", adminController.FeaturePart)
			admin.PUT("/cars/:id/active", carController.ToggleCarActive)
			admin.PUT("/parts/:id/active", partController.TogglePartActive)
		}
	}

	// ====== WebSocket notifications ======
	r.GET("/ws", middleware.AuthMiddleware(), websocket.HandleConnection)
}
