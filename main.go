package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/slotswap/slotswap_backend/controllers"
	"github.com/slotswap/slotswap_backend/database"
	"github.com/slotswap/slotswap_backend/docs"
	"github.com/slotswap/slotswap_backend/middleware"
	"github.com/slotswap/slotswap_backend/websocket"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           SlotSwap API
// @version         1.0
// @description     API Server for the SlotSwap calendar slot exchange
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()
	database.Recover()

	// Wire the swap engine to the database
	controllers.InitEngine()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "SlotSwap API"
	docs.SwaggerInfo.Description = "API Server for the SlotSwap calendar slot exchange"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		api.GET("/auth/me", controllers.Me)

		// Event routes
		api.GET("/events", controllers.GetEvents)
		api.POST("/events", controllers.CreateEvent)
		api.PUT("/events/:id", controllers.UpdateEvent)
		api.DELETE("/events/:id", controllers.DeleteEvent)

		// Swap routes
		api.GET("/swappable-slots", controllers.GetSwappableSlots)
		api.POST("/swap-request", controllers.CreateSwapRequest)
		api.DELETE("/swap-request/:id", controllers.CancelSwapRequest)
		api.POST("/swap-response/:id", controllers.RespondToSwap)
		api.GET("/swap-requests/incoming", controllers.GetIncomingSwapRequests)
		api.GET("/swap-requests/outgoing", controllers.GetOutgoingSwapRequests)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
