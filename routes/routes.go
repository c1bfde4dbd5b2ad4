package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/account", controllers.DeleteAccount)
		user.POST("/devices", controllers.RegisterDevice)
		user.DELETE("/devices", controllers.UnregisterDevice)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.GET("", controllers.GetMeals)
		meals.POST("", controllers.LogMeal)
		meals.DELETE("/:id", controllers.DeleteMeal)
		meals.GET("/suggestions", controllers.MealSuggestions)
	}

	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.AuthMiddleware())
	{
		nutrition.GET("/search", controllers.SearchNutrition)
		nutrition.GET("/suggestions", controllers.SearchSuggestions)
		nutrition.GET("/all", controllers.GetAllNutritionMeals)
		nutrition.GET("/meal/:id", controllers.GetNutritionMeal)
		nutrition.POST("/recognize", controllers.RecognizeMealPhoto)
	}

	progress := r.Group("/progress")
	progress.Use(middlewares.AuthMiddleware())
	{
		progress.GET("/statistics", controllers.GetProgress)
	}

	packages := r.Group("/meal-packages")
	packages.Use(middlewares.AuthMiddleware())
	{
		packages.GET("/recommend", controllers.RecommendPackages)
		packages.GET("/suggest", controllers.SuggestPackages)
	}

	// Premium-gated hydration and weight tracking
	water := r.Group("/water-logs")
	water.Use(middlewares.AuthMiddleware(), middlewares.PremiumMiddleware())
	{
		water.GET("", controllers.GetWaterLogs)
		water.POST("", controllers.CreateWaterLog)
		water.DELETE("/:id", controllers.DeleteWaterLog)
	}

	weight := r.Group("/weight-logs")
	weight.Use(middlewares.AuthMiddleware(), middlewares.PremiumMiddleware())
	{
		weight.GET("", controllers.GetWeightLogs)
		weight.POST("", controllers.CreateWeightLog)
		weight.PUT("/:id", controllers.UpdateWeightLog)
		weight.DELETE("/:id", controllers.DeleteWeightLog)
	}

	reminders := r.Group("/reminders")
	reminders.Use(middlewares.AuthMiddleware())
	{
		reminders.GET("", controllers.GetReminders)
		reminders.POST("", controllers.CreateReminder)
		reminders.PUT("/:id", controllers.UpdateReminder)
		reminders.DELETE("/:id", controllers.DeleteReminder)
		reminders.PATCH("/:id/toggle", controllers.ToggleReminder)
	}

	grocery := r.Group("/grocery-lists")
	grocery.Use(middlewares.AuthMiddleware())
	{
		grocery.POST("", controllers.CreateGroceryList)
		grocery.GET("", controllers.GetGroceryLists)
		grocery.GET("/active", controllers.GetActiveGroceryList)
		grocery.PUT("/:id", controllers.UpdateGroceryList)
		grocery.DELETE("/:id", controllers.DeleteGroceryList)
		grocery.POST("/:id/items", controllers.AddGroceryItem)
		grocery.PUT("/:id/items/:itemId", controllers.UpdateGroceryItem)
		grocery.DELETE("/:id/items/:itemId", controllers.RemoveGroceryItem)
	}

	feedback := r.Group("/feedback")
	feedback.Use(middlewares.AuthMiddleware())
	{
		feedback.POST("", controllers.SubmitFeedback)
		feedback.GET("", controllers.GetFeedbackHistory)
		feedback.GET("/:id", controllers.GetFeedback)
	}

	chatbot := r.Group("/chatbot")
	chatbot.Use(middlewares.AuthMiddleware())
	{
		chatbot.POST("/chat", controllers.Chat)
		chatbot.GET("/quota", controllers.ChatQuota)
		chatbot.POST("/reset", controllers.ResetChat)
	}

	catalog := r.Group("/catalog")
	catalog.Use(middlewares.AuthMiddleware())
	{
		catalog.GET("/meals", controllers.ListCatalogMeals)
		catalog.POST("/meals", controllers.CreateCatalogMeal)
		catalog.PUT("/meals/:id", controllers.UpdateCatalogMeal)
		catalog.DELETE("/meals/:id", controllers.DeleteCatalogMeal)
		catalog.GET("/packages", controllers.ListCatalogPackages)
		catalog.POST("/packages", controllers.CreateCatalogPackage)
		catalog.DELETE("/packages/:id", controllers.DeleteCatalogPackage)
	}

	return r
}
